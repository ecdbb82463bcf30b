package service

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-portal-api/internal/models"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
	"github.com/noah-isme/course-portal-api/pkg/storeclient"
)

type mockHelpStore struct {
	items   []models.HelpRequest
	err     error
	created []models.HelpRequestInput
}

func (m *mockHelpStore) List(ctx context.Context) ([]models.HelpRequest, error) {
	return m.items, m.err
}

func (m *mockHelpStore) Create(ctx context.Context, input models.HelpRequestInput) error {
	m.created = append(m.created, input)
	return m.err
}

func (m *mockHelpStore) Delete(ctx context.Context, id string) error { return m.err }

func validConcern() models.HelpRequestInput {
	return models.HelpRequestInput{Name: "Asha", PhoneNumber: "9876543210", Concern: "Receipt did not download"}
}

func TestHelpRequestServiceSubmit(t *testing.T) {
	store := &mockHelpStore{}
	svc := NewHelpRequestService(store, nil, nil, 0)

	input := validConcern()
	input.ImageBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	require.NoError(t, svc.Submit(context.Background(), input))
	require.Len(t, store.created, 1)
}

func TestHelpRequestServiceValidation(t *testing.T) {
	svc := NewHelpRequestService(&mockHelpStore{}, nil, nil, 0)

	input := validConcern()
	input.Concern = ""
	err := svc.Submit(context.Background(), input)
	assert.Equal(t, "concern", appErrors.FromError(err).Field)

	input = validConcern()
	input.ImageBase64 = "data:image/png;base64,***"
	err = svc.Submit(context.Background(), input)
	assert.Equal(t, "imageBase64", appErrors.FromError(err).Field)
}

func TestHelpRequestServiceImageLimit(t *testing.T) {
	store := &mockHelpStore{}
	svc := NewHelpRequestService(store, nil, nil, 16)

	input := validConcern()
	input.ImageBase64 = base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 17)))
	err := svc.Submit(context.Background(), input)
	assert.Equal(t, "Image size must be less than 5MB", appErrors.FromError(err).Message)
	assert.Empty(t, store.created)
}

func TestHelpRequestServiceStoreErrors(t *testing.T) {
	svc := NewHelpRequestService(&mockHelpStore{err: &storeclient.StatusError{StatusCode: http.StatusBadRequest, Message: "Phone number already has an open concern"}}, nil, nil, 0)
	err := svc.Submit(context.Background(), validConcern())
	assert.Equal(t, "Phone number already has an open concern", appErrors.FromError(err).Message)

	svc = NewHelpRequestService(&mockHelpStore{err: errors.New("eof")}, nil, nil, 0)
	err = svc.Submit(context.Background(), validConcern())
	assert.Equal(t, "Failed to submit your concern. Please try again.", appErrors.FromError(err).Message)
}

func TestHelpRequestServiceListNewestFirst(t *testing.T) {
	svc := NewHelpRequestService(&mockHelpStore{items: []models.HelpRequest{
		{ID: "a", CreatedAt: ts(2)},
		{ID: "b", CreatedAt: ts(4)},
	}}, nil, nil, 0)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", items[0].ID)
}
