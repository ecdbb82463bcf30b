package repository

import (
	"context"
	"net/url"

	"github.com/noah-isme/course-portal-api/internal/models"
)

// HelpRequestRepository proxies the store's help request endpoints.
type HelpRequestRepository struct {
	store storeAPI
}

// NewHelpRequestRepository constructs the repository.
func NewHelpRequestRepository(store storeAPI) *HelpRequestRepository {
	return &HelpRequestRepository{store: store}
}

// List returns every help request.
func (r *HelpRequestRepository) List(ctx context.Context) ([]models.HelpRequest, error) {
	items := make([]models.HelpRequest, 0)
	if err := r.store.Get(ctx, "/help-requests", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Create submits a concern.
func (r *HelpRequestRepository) Create(ctx context.Context, input models.HelpRequestInput) error {
	return r.store.Post(ctx, "/help-requests", input, nil)
}

// Delete removes help request id.
func (r *HelpRequestRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, "/help-requests/"+url.PathEscape(id))
}
