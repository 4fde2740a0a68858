package handlers

import (
	"tasklist-api/domain/ports"
	"tasklist-api/domain/services"
	"tasklist-api/pkg/config"
)

// Services contains all the services needed for handlers
type Services struct {
	UserService       services.UserService
	TaskService       services.TaskService
	CollectionService services.CollectionService
	DashboardService  services.DashboardService
	ExportService     services.ExportService
	ExpirySweep       services.ExpirySweepService
	TokenBlacklist    ports.TokenBlacklistPort // nil = logout ฝั่ง client อย่างเดียว
	GoogleConfig      config.GoogleOAuthConfig
	HealthChecks      map[string]HealthCheck
	JWTSecret         string
}

// Handlers contains all HTTP handlers
type Handlers struct {
	UserHandler       *UserHandler
	AuthHandler       *AuthHandler
	TaskHandler       *TaskHandler
	CollectionHandler *CollectionHandler
	DashboardHandler  *DashboardHandler
	ExportHandler     *ExportHandler
	AdminHandler      *AdminHandler
	HealthHandler     *HealthHandler

	JWTSecret      string
	TokenBlacklist ports.TokenBlacklistPort
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		UserHandler:       NewUserHandler(services.UserService),
		AuthHandler:       NewAuthHandler(services.UserService, services.GoogleConfig),
		TaskHandler:       NewTaskHandler(services.TaskService),
		CollectionHandler: NewCollectionHandler(services.CollectionService),
		DashboardHandler:  NewDashboardHandler(services.DashboardService),
		ExportHandler:     NewExportHandler(services.ExportService),
		AdminHandler:      NewAdminHandler(services.ExpirySweep),
		HealthHandler:     NewHealthHandler(services.HealthChecks),
		JWTSecret:         services.JWTSecret,
		TokenBlacklist:    services.TokenBlacklist,
	}
}
