package router

import (
	app "github.com/giftlink/giftlink-api/internal/application"
	"github.com/giftlink/giftlink-api/internal/container"
	pginfra "github.com/giftlink/giftlink-api/internal/infrastructure/postgres"
	handlers "github.com/giftlink/giftlink-api/internal/interface/http"
	"github.com/giftlink/giftlink-api/internal/router/modules"
)

type AuthModuleDeps struct {
	Service *app.AuthService
	Handler *handlers.AuthHandler
}

type GiftModuleDeps struct {
	Service *app.GiftService
	Handler *handlers.GiftHandler
}

func buildAuthDeps() AuthModuleDeps {
	userRepo := pginfra.NewUserRepository(container.GetPGPool())

	service := app.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetRabbitPub(),
		container.GetLogger(),
		container.GetConfig().MailSendEnabled,
	)

	handler := handlers.NewAuthHandler(service, container.GetLogger())

	return AuthModuleDeps{Service: service, Handler: handler}
}

func buildGiftDeps() GiftModuleDeps {
	giftRepo := pginfra.NewGiftRepository(container.GetPGPool())

	cfg := container.GetConfig()
	service := app.NewGiftService(
		giftRepo,
		container.GetRedis(),
		container.GetLogger(),
		container.GetES(),
		cfg.ESGiftsIndex,
		container.GetGCS(),
		cfg.GCSBucket,
		cfg.SearchCacheTTL,
	)

	handler := handlers.NewGiftHandler(service, container.GetLogger())

	return GiftModuleDeps{Service: service, Handler: handler}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	authDeps := buildAuthDeps()
	r.Add(modules.NewAuthModule(authDeps.Handler, container.GetJWT()))

	giftDeps := buildGiftDeps()
	r.Add(modules.NewGiftModule(giftDeps.Handler, container.GetJWT()))

	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
