package repository

import (
	"context"

	"github.com/noah-isme/course-portal-api/internal/models"
)

// MeetLinkRepository proxies the store's meet link endpoints.
type MeetLinkRepository struct {
	store storeAPI
}

// NewMeetLinkRepository constructs the repository.
func NewMeetLinkRepository(store storeAPI) *MeetLinkRepository {
	return &MeetLinkRepository{store: store}
}

type meetLinksEnvelope struct {
	Data []models.MeetLink `json:"data"`
}

// All returns every configured meet link.
func (r *MeetLinkRepository) All(ctx context.Context) ([]models.MeetLink, error) {
	var env meetLinksEnvelope
	if err := r.store.Get(ctx, "/meetlinks/all", &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []models.MeetLink{}, nil
	}
	return env.Data, nil
}

// Create adds a meet link.
func (r *MeetLinkRepository) Create(ctx context.Context, link *models.MeetLink) error {
	var created models.MeetLink
	if err := r.store.Post(ctx, "/meetlinks", link, &created); err != nil {
		return err
	}
	if created.ID != "" {
		link.ID = created.ID
	}
	return nil
}
