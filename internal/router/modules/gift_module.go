package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/giftlink/giftlink-api/internal/container"
	handlers "github.com/giftlink/giftlink-api/internal/interface/http"
	"github.com/giftlink/giftlink-api/internal/interface/middleware"
	"github.com/giftlink/giftlink-api/pkg/helpers"
)

// GiftModule wires gift HTTP handlers into routes
// Public: GET /api/search, GET /api/gifts/suggest
// Protected: POST /api/gifts, POST /api/gifts/:id/image

type GiftModule struct {
	Handler *handlers.GiftHandler
	JWT     *helpers.JWTManager
}

func NewGiftModule(h *handlers.GiftHandler, jwt *helpers.JWTManager) *GiftModule {
	return &GiftModule{Handler: h, JWT: jwt}
}

func (m *GiftModule) Register(rg *gin.RouterGroup) {
	searchLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	suggestLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/search", searchLimiter, m.Handler.Search)
	rg.GET("/gifts/suggest", suggestLimiter, m.Handler.Suggest)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/gifts", m.Handler.Create)
		auth.POST("/gifts/:id/image", m.Handler.UploadImage)
	}
}
