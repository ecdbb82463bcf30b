package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-portal-api/internal/middleware"
	"github.com/noah-isme/course-portal-api/internal/models"
)

// Routes groups every handler mounted under the API prefix.
type Routes struct {
	Catalog       *CatalogHandler
	Applications  *ApplicationHandler
	Receipts      *ReceiptHandler
	Notifications *NotificationHandler
	HelpRequests  *HelpRequestHandler
	Auth          *AuthHandler
	Admin         *AdminHandler

	// Authenticate validates bearer tokens on admin routes.
	Authenticate gin.HandlerFunc
	// LookupLimit throttles the enumerable ID lookups. Optional.
	LookupLimit gin.HandlerFunc
}

// Register mounts the public and admin routes on api.
func (r Routes) Register(api *gin.RouterGroup) {
	api.GET("/dashboard", r.Catalog.Dashboard)
	api.GET("/courses/:id", r.Catalog.Course)
	api.GET("/notifications", r.Notifications.List)

	api.POST("/applications", r.Applications.Submit)
	lookups := api.Group("/applications")
	if r.LookupLimit != nil {
		lookups.Use(r.LookupLimit)
	}
	lookups.GET("/status", r.Applications.Status)
	lookups.GET("/meet-link", r.Applications.MeetLink)

	api.GET("/receipts/download", r.Receipts.Download)
	api.POST("/help-requests", r.HelpRequests.Submit)

	api.POST("/auth/login", r.Auth.Login)
	api.GET("/auth/me", r.Authenticate, r.Auth.Me)

	admin := api.Group("/admin", r.Authenticate, middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/applications", r.Admin.Applications)
	admin.GET("/applications/export", r.Admin.ExportApplications)
	admin.GET("/meetlinks", r.Admin.MeetLinks)
	admin.POST("/meetlinks", r.Admin.CreateMeetLink)
	admin.POST("/notifications", r.Notifications.Create)
	admin.PUT("/notifications/:id", r.Notifications.Update)
	admin.DELETE("/notifications/:id", r.Notifications.Delete)
	admin.GET("/help-requests", r.HelpRequests.List)
	admin.DELETE("/help-requests/:id", r.HelpRequests.Delete)
}
