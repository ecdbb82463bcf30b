package models

// Course is read-only to this service; the store owns it.
type Course struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	CategoryID      string         `json:"categoryId,omitempty"`
	Fees            Amount         `json:"fees"`
	StartDate       string         `json:"startDate"`
	StartTime       string         `json:"startTime"`
	EndTime         string         `json:"endTime"`
	LastDateToApply string         `json:"lastDateToApply"`
	ImageURL        string         `json:"imageUrl,omitempty"`
	CreatedAt       StoreTimestamp `json:"createdAt"`
}

// Category groups courses on the dashboard.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CatalogFilter narrows the dashboard course list.
type CatalogFilter struct {
	Search   string
	Category string
}
