package router

import (
	"github.com/bazarhub/catalog-api/internal/application"
	"github.com/bazarhub/catalog-api/internal/container"
	pginfra "github.com/bazarhub/catalog-api/internal/infrastructure/postgres"
	handlers "github.com/bazarhub/catalog-api/internal/interface/http"
	"github.com/bazarhub/catalog-api/internal/router/modules"
)

func buildAuthHandler() *handlers.AuthHandler {
	cfg := container.GetConfig()
	users := pginfra.NewUserRepository(container.GetPGPool())

	service := application.NewAuthService(
		users,
		container.GetJWT(),
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
		container.GetSMS(),
		cfg.Verification,
		cfg.ActivationURL,
		cfg.OTPTTL,
		container.GetLogger(),
	)

	return handlers.NewAuthHandler(
		service,
		container.GetOAuth(),
		container.GetRedis(),
		container.GetLogger(),
	)
}

func buildCatalogModule() *modules.CatalogModule {
	cfg := container.GetConfig()
	pool := container.GetPGPool()

	service := application.NewCatalogService(
		pginfra.NewCategoryRepository(pool),
		pginfra.NewSubCategoryRepository(pool),
		pginfra.NewSubSubCategoryRepository(pool),
		pginfra.NewProductRepository(pool),
		container.GetES(),
		cfg.ESProductsIndex,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetLogger(),
	)

	catalog := handlers.NewCatalogHandler(service, container.GetLogger())
	products := handlers.NewProductHandler(service, container.GetLogger())
	return modules.NewCatalogModule(catalog, products)
}

func buildContactHandler() *handlers.ContactHandler {
	cfg := container.GetConfig()
	pool := container.GetPGPool()

	service := application.NewContactService(
		pginfra.NewContactRepository(pool),
		pginfra.NewEnquiryRepository(pool),
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
		cfg.AdminEmail,
		container.GetLogger(),
	)

	return handlers.NewContactHandler(service, container.GetLogger())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	r.Add(modules.NewAuthModule(buildAuthHandler()))
	r.Add(buildCatalogModule())
	r.Add(modules.NewContactModule(buildContactHandler()))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
