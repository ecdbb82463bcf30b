package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/course-portal-api/internal/models"
)

// ApplicationRepository reads and writes applications through the store API.
type ApplicationRepository struct {
	store storeAPI
}

// NewApplicationRepository constructs the repository.
func NewApplicationRepository(store storeAPI) *ApplicationRepository {
	return &ApplicationRepository{store: store}
}

type applicationsEnvelope struct {
	Success bool                          `json:"success"`
	Data    map[string]models.Application `json:"data"`
}

// All returns every application keyed as the store keys them.
func (r *ApplicationRepository) All(ctx context.Context) (map[string]models.Application, error) {
	var env applicationsEnvelope
	if err := r.store.Get(ctx, "/applications", &env); err != nil {
		return nil, err
	}
	if !env.Success || env.Data == nil {
		return nil, &RejectedError{Message: "applications unavailable"}
	}
	return env.Data, nil
}

// Create persists a new application. The store acknowledges with success=true.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	var ack ackEnvelope
	if err := r.store.Post(ctx, "/applications", app, &ack); err != nil {
		return err
	}
	if err := ack.err(); err != nil {
		return fmt.Errorf("create application %s: %w", app.ApplicationID, err)
	}
	return nil
}
