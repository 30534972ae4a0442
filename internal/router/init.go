package router

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/lumoshop/lumoshop-api/config"
	"github.com/lumoshop/lumoshop-api/internal/application"
	"github.com/lumoshop/lumoshop-api/internal/domain/repository"
	handlers "github.com/lumoshop/lumoshop-api/internal/interface/http"
	"github.com/lumoshop/lumoshop-api/internal/router/modules"
	"github.com/lumoshop/lumoshop-api/pkg/helpers"
)

// Deps carries everything the feature modules need. main builds the
// clients once and hands them down; modules never reach for globals.
type Deps struct {
	Config   *config.Config
	Logger   *logrus.Logger
	JWT      *helpers.JWTManager
	Redis    *redis.Client
	Users    repository.UserRepository
	Products repository.ProductRepository
	Notifier application.Notifier
	Verifier application.TokenVerifier
	GCS      *storage.Client
	ES       *elasticsearch.Client
}

// InitModules builds the application services and handlers and registers
// every feature module with the router registry. Called once at startup.
func InitModules(r *Registry, d Deps) {
	userSvc := application.NewUserService(d.Users, d.JWT, d.Notifier, d.Logger, d.Config.AdminEmail)
	userSvc.GCS = d.GCS
	userSvc.GCSBucket = d.Config.GCSBucket
	userSvc.ES = d.ES
	userSvc.ESUsersIndex = d.Config.ESUsersIndex

	resetSvc := application.NewResetService(d.Users, d.Notifier, d.Logger)
	federationSvc := application.NewFederationService(d.Users, d.Verifier, d.Config.AdminEmail, d.Logger)
	productSvc := application.NewProductService(d.Products, d.Logger)

	userHandler := handlers.NewUserHandler(userSvc, federationSvc, resetSvc, d.Logger, d.Config.VerifyEmailURL)
	authHandler := handlers.NewAuthHandler(resetSvc, d.Logger, d.Config.ResetPasswordURL)
	adminHandler := handlers.NewAdminHandler(userSvc, d.Logger)
	productHandler := handlers.NewProductHandler(productSvc, d.Logger)

	r.Add(modules.NewUserModule(userHandler, d.Redis))
	r.Add(modules.NewAuthModule(authHandler, d.Redis))
	r.Add(modules.NewAdminModule(adminHandler, d.Redis))
	r.Add(modules.NewProductModule(productHandler))
}
