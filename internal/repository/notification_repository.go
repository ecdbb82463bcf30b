package repository

import (
	"context"
	"net/url"

	"github.com/noah-isme/course-portal-api/internal/models"
)

// NotificationRepository proxies the store's notification endpoints.
type NotificationRepository struct {
	store storeAPI
}

// NewNotificationRepository constructs the repository.
func NewNotificationRepository(store storeAPI) *NotificationRepository {
	return &NotificationRepository{store: store}
}

// List returns notifications in store order.
func (r *NotificationRepository) List(ctx context.Context) ([]models.Notification, error) {
	items := make([]models.Notification, 0)
	if err := r.store.Get(ctx, "/notifications", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Create posts a new notification.
func (r *NotificationRepository) Create(ctx context.Context, input models.NotificationInput) error {
	return r.store.Post(ctx, "/notifications", input, nil)
}

// Update replaces the message of notification id.
func (r *NotificationRepository) Update(ctx context.Context, id string, input models.NotificationInput) error {
	return r.store.Put(ctx, "/notifications/"+url.PathEscape(id), input, nil)
}

// Delete removes notification id.
func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, "/notifications/"+url.PathEscape(id))
}
