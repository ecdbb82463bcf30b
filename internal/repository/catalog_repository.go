package repository

import (
	"context"

	"github.com/noah-isme/course-portal-api/internal/models"
)

// CatalogRepository reads courses and categories from the store.
type CatalogRepository struct {
	store storeAPI
}

// NewCatalogRepository constructs the repository.
func NewCatalogRepository(store storeAPI) *CatalogRepository {
	return &CatalogRepository{store: store}
}

// Courses lists all courses.
func (r *CatalogRepository) Courses(ctx context.Context) ([]models.Course, error) {
	courses := make([]models.Course, 0)
	if err := r.store.Get(ctx, "/courses", &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Categories lists all categories.
func (r *CatalogRepository) Categories(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := r.store.Get(ctx, "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
