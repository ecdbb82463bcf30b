package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-portal-api/internal/models"
	"github.com/noah-isme/course-portal-api/internal/repository"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
	"github.com/noah-isme/course-portal-api/pkg/storeclient"
)

type countingReader struct {
	apps  map[string]models.Application
	err   error
	calls int
}

func (c *countingReader) All(ctx context.Context) (map[string]models.Application, error) {
	c.calls++
	return c.apps, c.err
}

func TestStatusServiceResolve(t *testing.T) {
	reader := &countingReader{apps: map[string]models.Application{
		"432109": {ApplicationID: "432109", Name: "Asha", Status: models.ApplicationStatusSelected},
		"k2":     {ApplicationID: "555555", Name: "Ravi"},
	}}
	svc := NewStatusService(reader, nil, nil)

	app, err := svc.Resolve(context.Background(), " 432109 ")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusSelected, app.Status)

	app, err = svc.Resolve(context.Background(), "555555")
	require.NoError(t, err)
	assert.Equal(t, "Ravi", app.Name)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)

	_, err = svc.Resolve(context.Background(), "000000")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "Application not found", appErr.Message)
}

func TestStatusServiceBlankIDSkipsStore(t *testing.T) {
	reader := &countingReader{}
	svc := NewStatusService(reader, nil, nil)

	_, err := svc.Resolve(context.Background(), "   ")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "Please enter an application ID", appErr.Message)
	assert.Zero(t, reader.calls)
}

func TestStatusServiceStoreFailures(t *testing.T) {
	cases := []struct {
		name string
		err  error
		msg  string
	}{
		{"rejected", &repository.RejectedError{}, "Failed to fetch application details"},
		{"status", &storeclient.StatusError{StatusCode: http.StatusServiceUnavailable}, "Failed to fetch application details"},
		{"transport", errors.New("timeout"), "Error checking application status"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewStatusService(&countingReader{err: tc.err}, nil, nil)
			_, err := svc.Resolve(context.Background(), "432109")
			appErr := appErrors.FromError(err)
			assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
			assert.Equal(t, tc.msg, appErr.Message)
		})
	}
}
