package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-portal-api/internal/dto"
	"github.com/noah-isme/course-portal-api/internal/middleware"
	"github.com/noah-isme/course-portal-api/internal/models"
	"github.com/noah-isme/course-portal-api/internal/service"
	"github.com/noah-isme/course-portal-api/pkg/middleware/ratelimit"
	"github.com/noah-isme/course-portal-api/pkg/storage"
)

type acceptAll struct{}

func (acceptAll) Login(context.Context, models.LoginRequest) error { return nil }

type fakeApplicants struct{}

func (fakeApplicants) List(context.Context, models.ApplicationFilter) ([]models.Application, error) {
	return []models.Application{{ApplicationID: "111111"}}, nil
}

func (fakeApplicants) Export(context.Context, models.ApplicationFilter) ([]byte, error) {
	return []byte("Application ID\n111111\n"), nil
}

type fakeMeetLinkAdmin struct{}

func (fakeMeetLinkAdmin) List(context.Context) ([]models.MeetLink, error) { return nil, nil }

func (fakeMeetLinkAdmin) Create(_ context.Context, link models.MeetLink) (*models.MeetLink, error) {
	return &link, nil
}

type fakeNotificationSrv struct{}

func (fakeNotificationSrv) List(context.Context) ([]models.Notification, error) { return nil, nil }
func (fakeNotificationSrv) Create(context.Context, models.NotificationInput) error {
	return nil
}
func (fakeNotificationSrv) Update(context.Context, string, models.NotificationInput) error {
	return nil
}
func (fakeNotificationSrv) Delete(context.Context, string) error { return nil }

type fakeHelpSrv struct{}

func (fakeHelpSrv) Submit(context.Context, models.HelpRequestInput) error { return nil }
func (fakeHelpSrv) List(context.Context) ([]models.HelpRequest, error) {
	return nil, nil
}
func (fakeHelpSrv) Delete(context.Context, string) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *service.ReceiptService) {
	gin.SetMode(gin.TestMode)
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	receipts := service.NewReceiptService(store, storage.NewSignedURLSigner("secret", time.Hour), nil, nil, service.ReceiptConfig{APIPrefix: "/api/v1"})
	auth := service.NewAuthService(acceptAll{}, nil, nil, service.AuthConfig{AccessTokenSecret: "jwt-secret", AccessTokenExpiry: time.Hour})

	r := gin.New()
	r.Use(middleware.WithResponseMeta())
	Routes{
		Catalog:       NewCatalogHandler(&fakeCatalogSrv{resp: &dto.DashboardResponse{}}),
		Applications:  newApplicationHandlerForTest(&fakeSubmitter{}),
		Receipts:      NewReceiptHandler(receipts, nil),
		Notifications: NewNotificationHandler(fakeNotificationSrv{}),
		HelpRequests:  NewHelpRequestHandler(fakeHelpSrv{}),
		Auth:          NewAuthHandler(auth),
		Admin:         NewAdminHandler(fakeApplicants{}, fakeMeetLinkAdmin{}),
		Authenticate:  middleware.JWT(auth),
		LookupLimit:   ratelimit.New(1, 2).Middleware(),
	}.Register(r.Group("/api/v1"))
	return r, receipts
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouterAdminRequiresToken(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/admin/applications", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(r, postJSON("/api/v1/auth/login", `{"userId":"admin","password":"pw"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeEnvelope(t, rec).Data["access_token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/applications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = serve(r, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeEnvelope(t, rec).Meta["total"])

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/applications/export", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = serve(r, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "applicants.csv")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = serve(r, req)
	assert.Equal(t, "admin", decodeEnvelope(t, rec).Data["user_id"])
}

func TestRouterLookupsAreRateLimited(t *testing.T) {
	r, _ := newTestRouter(t)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/applications/status?id=432109", nil)).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouterReceiptDownload(t *testing.T) {
	r, receipts := newTestRouter(t)
	app := models.Application{ApplicationID: "432109", Name: "Asha Rao", CourseName: "Spoken English", CourseFees: "4999", DOB: "2001-02-03"}
	course := models.Course{ID: "c1", Title: "Spoken English", Fees: "4999", StartDate: "2024-06-01", StartTime: "09:00", EndTime: "11:00", LastDateToApply: "2024-05-25"}
	link, err := receipts.Generate(context.Background(), app, course)
	require.NoError(t, err)

	rec := serve(r, httptest.NewRequest(http.MethodGet, link.DownloadURL, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="Asha Rao_CourseApplication.pdf"`)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/receipts/download?token=forged", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
