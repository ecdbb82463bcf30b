package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/course-portal-api/internal/dto"
	"github.com/noah-isme/course-portal-api/internal/models"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
)

const (
	coursesCacheKey    = "catalog:courses"
	categoriesCacheKey = "catalog:categories"
)

type catalogStore interface {
	Courses(ctx context.Context) ([]models.Course, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

type notificationLister interface {
	List(ctx context.Context) ([]models.Notification, error)
}

// CatalogService composes the public dashboard.
type CatalogService struct {
	catalog       catalogStore
	notifications notificationLister
	cache         *CacheService
	logger        *zap.Logger
}

// NewCatalogService constructs CatalogService.
func NewCatalogService(catalog catalogStore, notifications notificationLister, cache *CacheService, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{catalog: catalog, notifications: notifications, cache: cache, logger: logger}
}

// Dashboard loads notifications, courses and categories concurrently and applies filter.
// The bool reports whether both catalog lists came from cache.
func (s *CatalogService) Dashboard(ctx context.Context, filter models.CatalogFilter) (*dto.DashboardResponse, bool, error) {
	var (
		wg            sync.WaitGroup
		notifications []models.Notification
		courses       []models.Course
		categories    []models.Category
		coursesHit    bool
		categoriesHit bool
		errs          [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		notifications, errs[0] = s.notifications.List(ctx)
	}()
	go func() {
		defer wg.Done()
		courses, coursesHit, errs[1] = s.courses(ctx)
	}()
	go func() {
		defer wg.Done()
		categories, categoriesHit, errs[2] = s.categories(ctx)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			s.logger.Warn("dashboard fetch failed", zap.Error(err))
			return nil, false, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "Failed to load dashboard")
		}
	}

	return &dto.DashboardResponse{
		NotificationCount: len(notifications),
		Categories:        categories,
		Courses:           filterCourses(sortCourses(courses), filter),
	}, coursesHit && categoriesHit, nil
}

// Course resolves one course by id.
func (s *CatalogService) Course(ctx context.Context, id string) (*models.Course, error) {
	courses, _, err := s.courses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "Failed to fetch courses")
	}
	for _, course := range courses {
		if course.ID == id {
			c := course
			return &c, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
}

func (s *CatalogService) courses(ctx context.Context) ([]models.Course, bool, error) {
	var cached []models.Course
	if s.cache.Get(ctx, coursesCacheKey, &cached) {
		return cached, true, nil
	}
	courses, err := s.catalog.Courses(ctx)
	if err != nil {
		return nil, false, err
	}
	s.cache.Set(ctx, coursesCacheKey, courses, 0)
	return courses, false, nil
}

func (s *CatalogService) categories(ctx context.Context) ([]models.Category, bool, error) {
	var cached []models.Category
	if s.cache.Get(ctx, categoriesCacheKey, &cached) {
		return cached, true, nil
	}
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return nil, false, err
	}
	s.cache.Set(ctx, categoriesCacheKey, categories, 0)
	return categories, false, nil
}

func sortCourses(courses []models.Course) []models.Course {
	out := append([]models.Course(nil), courses...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	return out
}

func filterCourses(courses []models.Course, filter models.CatalogFilter) []models.Course {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	category := strings.TrimSpace(filter.Category)
	if strings.EqualFold(category, "all") {
		category = ""
	}
	out := make([]models.Course, 0, len(courses))
	for _, course := range courses {
		if search != "" && !strings.Contains(strings.ToLower(course.Title), search) {
			continue
		}
		if category != "" && course.CategoryID != category {
			continue
		}
		out = append(out, course)
	}
	return out
}
