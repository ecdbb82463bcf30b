package repository

import (
	"context"

	"github.com/noah-isme/course-portal-api/internal/models"
)

// AdminRepository verifies admin credentials against the store.
type AdminRepository struct {
	store storeAPI
}

// NewAdminRepository constructs the repository.
func NewAdminRepository(store storeAPI) *AdminRepository {
	return &AdminRepository{store: store}
}

// Login returns nil when the store accepts the credentials.
func (r *AdminRepository) Login(ctx context.Context, req models.LoginRequest) error {
	var ack ackEnvelope
	if err := r.store.Post(ctx, "/admin/login", req, &ack); err != nil {
		return err
	}
	return ack.err()
}
