package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/giftlink/giftlink-api/internal/container"
	handlers "github.com/giftlink/giftlink-api/internal/interface/http"
	"github.com/giftlink/giftlink-api/internal/interface/middleware"
	"github.com/giftlink/giftlink-api/pkg/helpers"
)

// AuthModule wires auth HTTP handlers into routes
// Public: POST /api/register, POST /api/login, PUT /api/update
// Update is identified by the email header rather than a bearer token.

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	updateLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.PUT("/update", updateLimiter, m.Handler.UpdateProfile)
}
