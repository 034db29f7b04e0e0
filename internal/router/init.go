package router

import (
	"github.com/sevamart/sevamart-backend/internal/application"
	"github.com/sevamart/sevamart-backend/internal/container"
	pginfra "github.com/sevamart/sevamart-backend/internal/infrastructure/postgres"
	handlers "github.com/sevamart/sevamart-backend/internal/interface/http"
	"github.com/sevamart/sevamart-backend/internal/router/modules"
)

// InitModules builds the repositories, workflow services and handlers
// from the container singletons and registers every feature module.
// Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	users := pginfra.NewUserRepository(pool)
	categories := pginfra.NewCategoryRepository(pool)
	services := pginfra.NewServiceRepository(pool)
	bookings := pginfra.NewBookingRepository(pool)
	subscriptions := pginfra.NewSubscriptionRepository(pool)
	plans := pginfra.NewPlanRepository(pool)
	notifications := pginfra.NewNotificationRepository(pool)
	content := pginfra.NewContentRepository(pool)

	notifier := application.NewNotifier(notifications, users, container.GetRabbitPub(), logger)

	userSvc := application.NewUserService(users, jwt, container.GetRedis(), container.GetGCS(), cfg.GCSBucket, logger, notifier)
	bookingSvc := application.NewBookingService(bookings, services, users, logger)
	subscriptionSvc := application.NewSubscriptionService(subscriptions, plans, container.GetGCS(), cfg.GCSBucket, logger)
	catalogSvc := application.NewCatalogService(categories, services, container.GetGCS(), cfg.GCSBucket, container.GetES(), cfg.ESServicesIndex, logger)
	notificationSvc := application.NewNotificationService(notifications, notifier, logger)
	contentSvc := application.NewContentService(content, container.GetGCS(), cfg.GCSBucket, logger)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), users, jwt))
	r.Add(modules.NewBookingModule(handlers.NewBookingHandler(bookingSvc, logger), users, jwt))
	r.Add(modules.NewSubscriptionModule(handlers.NewSubscriptionHandler(subscriptionSvc, logger), users, jwt))
	r.Add(modules.NewCatalogModule(handlers.NewCatalogHandler(catalogSvc, logger), users, jwt))
	r.Add(modules.NewNotificationModule(handlers.NewNotificationHandler(notificationSvc, logger), users, jwt))
	r.Add(modules.NewContentModule(handlers.NewContentHandler(contentSvc, logger), users, jwt))
}
