package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/giftlink/giftlink-api/internal/application"
	"github.com/giftlink/giftlink-api/internal/domain/entity"
	repo "github.com/giftlink/giftlink-api/internal/domain/repository"
	"github.com/giftlink/giftlink-api/pkg/response"
)

type GiftHandler struct {
	Svc    *app.GiftService
	Logger *logrus.Logger
}

func NewGiftHandler(svc *app.GiftService, logger *logrus.Logger) *GiftHandler {
	return &GiftHandler{Svc: svc, Logger: logger}
}

type createGiftRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Condition   string `json:"condition"`
	AgeYears    int    `json:"age_years"`
	Description string `json:"description"`
}

// Search answers GET /api/search with query params name, category,
// condition and age_years. Empty params are ignored.
func (h *GiftHandler) Search(c *gin.Context) {
	q := app.SearchQuery{
		Name:      c.Query("name"),
		Category:  c.Query("category"),
		Condition: c.Query("condition"),
		AgeYears:  c.Query("age_years"),
	}

	gifts, err := h.Svc.Search(c.Request.Context(), q)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("gift search failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	if gifts == nil {
		gifts = []entity.Gift{}
	}
	response.Success(c, http.StatusOK, gifts, "Gifts retrieved successfully", map[string]any{"count": len(gifts)})
}

func (h *GiftHandler) Create(c *gin.Context) {
	var req createGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		response.Error[any](c, http.StatusBadRequest, "Gift name is required", nil)
		return
	}

	g := &entity.Gift{
		Name:        req.Name,
		Category:    req.Category,
		Condition:   req.Condition,
		AgeYears:    req.AgeYears,
		Description: req.Description,
	}
	if err := h.Svc.Create(c.Request.Context(), g); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("gift create failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	response.Success(c, http.StatusCreated, g, "Gift created successfully", nil)
}

// UploadImage answers POST /api/gifts/:id/image with a multipart form
// carrying an "image" file.
func (h *GiftHandler) UploadImage(c *gin.Context) {
	giftID := c.Param("id")

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "Image file is required", nil)
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")
	url, err := h.Svc.UploadImage(c.Request.Context(), giftID, file, header.Filename, contentType)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			response.Error[any](c, http.StatusNotFound, "Gift not found", nil)
		case app.ErrStorageNotConfigured(err):
			response.Error[any](c, http.StatusServiceUnavailable, "Image storage is not available", nil)
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).Error("gift image upload failed")
			}
			response.Error[any](c, http.StatusInternalServerError, "Internal server error", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"image_url": url}, "Image uploaded successfully", nil)
}

// Suggest answers GET /api/gifts/suggest?q=... with full-text matches.
func (h *GiftHandler) Suggest(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Success(c, http.StatusOK, []map[string]any{}, "Suggestions retrieved successfully", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Suggest(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("gift suggest failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "Suggestions retrieved successfully", map[string]any{"count": len(hits)})
}
