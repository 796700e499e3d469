package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/giftlink/giftlink-api/internal/application"
	"github.com/giftlink/giftlink-api/pkg/helpers"
	"github.com/giftlink/giftlink-api/pkg/response"
)

type AuthHandler struct {
	Svc    *app.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *app.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// updateProfileRequest uses pointers so that an absent key can be told apart
// from an empty value. Email and password are validated when present but
// never applied; only the name fields are updatable.
type updateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), app.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"email": res.Email,
		"token": res.Token,
	}, "User registered successfully", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":    res.Token,
		"userName": res.UserName,
		"email":    res.Email,
	}, "User logged in successfully", nil)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	fields := map[string]string{}
	if req.FirstName != nil {
		fields["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["lastName"] = *req.LastName
	}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Password != nil {
		fields["password"] = *req.Password
	}

	email := c.GetHeader("email")
	res, err := h.Svc.UpdateProfile(c.Request.Context(), email, fields)
	if err != nil {
		h.writeError(c, err)
		return
	}

	var updatedAt any
	if res.User.UpdatedAt != nil {
		updatedAt = res.User.UpdatedAt
	}
	response.Success(c, http.StatusOK, gin.H{
		"authtoken": res.Token,
		"user": gin.H{
			"firstName": res.User.FirstName,
			"lastName":  res.User.LastName,
			"email":     res.User.Email,
			"updatedAt": updatedAt,
		},
	}, "User updated successfully", nil)
}

func (h *AuthHandler) writeError(c *gin.Context, err error) {
	var ve *app.ValidationError
	switch {
	case errors.As(err, &ve):
		response.Error[any](c, http.StatusBadRequest, "Validation failed", ve.Failures)
	case errors.Is(err, app.ErrDuplicateEmail):
		response.Error[any](c, http.StatusBadRequest, "User with this email already exists. Try logging in", nil)
	case errors.Is(err, app.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "User with this email does not exist. Try registering", nil)
	case errors.Is(err, app.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "Incorrect email or password", nil)
	case errors.Is(err, app.ErrMissingEmail):
		response.Error[any](c, http.StatusBadRequest, "Email not found in the request headers", nil)
	case errors.Is(err, app.ErrNoFieldsToUpdate):
		response.Error[any](c, http.StatusBadRequest, "No valid fields to update", nil)
	case errors.Is(err, app.ErrUpdateFailed):
		response.Error[any](c, http.StatusInternalServerError, "Failed to update user", nil)
	case errors.Is(err, helpers.ErrMissingSecret):
		response.Error[any](c, http.StatusInternalServerError, "Server configuration error", nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("auth request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
