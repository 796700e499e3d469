package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/giftlink/giftlink-api/internal/application"
	"github.com/giftlink/giftlink-api/internal/domain/entity"
	repo "github.com/giftlink/giftlink-api/internal/domain/repository"
	"github.com/giftlink/giftlink-api/pkg/helpers"
)

type stubUserRepo struct {
	users  map[string]*entity.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*entity.User{}}
}

func (r *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.Email]; ok {
		return repo.ErrDuplicate
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *entity.User) error {
	stored, ok := r.users[u.Email]
	if !ok {
		return repo.ErrNotFound
	}
	stored.FirstName = u.FirstName
	stored.LastName = u.LastName
	stored.UpdatedAt = u.UpdatedAt
	return nil
}

func newAuthTestRouter() (*gin.Engine, *stubUserRepo) {
	gin.SetMode(gin.TestMode)
	userRepo := newStubUserRepo()
	jwt := &helpers.JWTManager{Secret: []byte("test-secret"), TTL: time.Hour}
	svc := app.NewAuthService(userRepo, jwt, nil, nil, false)
	h := NewAuthHandler(svc, nil)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.PUT("/update", h.UpdateProfile)
	return r, userRepo
}

func doJSON(r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerMike(t *testing.T, r *gin.Engine) map[string]any {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/register", gin.H{
		"firstName": "Mike",
		"lastName":  "Smith",
		"email":     "mike@x.com",
		"password":  "secret1",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeEnvelope(t, w)
}

func TestRegisterEndpoint(t *testing.T) {
	r, _ := newAuthTestRouter()

	body := registerMike(t, r)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User registered successfully", body["message"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "mike@x.com", data["email"])
	assert.NotEmpty(t, data["token"])
}

func TestRegisterDuplicateEndpoint(t *testing.T) {
	r, _ := newAuthTestRouter()
	registerMike(t, r)

	w := doJSON(r, http.MethodPost, "/api/register", gin.H{
		"firstName": "Mike",
		"lastName":  "Smith",
		"email":     "mike@x.com",
		"password":  "secret1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeEnvelope(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "User with this email already exists. Try logging in", body["message"])
}

func TestRegisterValidationEndpoint(t *testing.T) {
	r, _ := newAuthTestRouter()

	w := doJSON(r, http.MethodPost, "/api/register", gin.H{
		"firstName": "",
		"lastName":  "Sm1th",
		"email":     "nope",
		"password":  "abc",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeEnvelope(t, w)
	assert.Equal(t, "Validation failed", body["message"])
	failures, ok := body["error"].([]any)
	require.True(t, ok)
	assert.Len(t, failures, 5)
	first, ok := failures[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "firstName", first["field"])
	assert.Equal(t, "First name is required", first["message"])
}

func TestLoginEndpoint(t *testing.T) {
	r, _ := newAuthTestRouter()
	registerMike(t, r)

	w := doJSON(r, http.MethodPost, "/api/login", gin.H{
		"email":    "mike@x.com",
		"password": "wrongpw",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Incorrect email or password", decodeEnvelope(t, w)["message"])

	w = doJSON(r, http.MethodPost, "/api/login", gin.H{
		"email":    "mike@x.com",
		"password": "secret1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeEnvelope(t, w)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Mike", data["userName"])
	assert.Equal(t, "mike@x.com", data["email"])
	assert.NotEmpty(t, data["token"])
}

func TestLoginUnknownEmailEndpoint(t *testing.T) {
	r, _ := newAuthTestRouter()

	w := doJSON(r, http.MethodPost, "/api/login", gin.H{
		"email":    "nobody@x.com",
		"password": "secret1",
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User with this email does not exist. Try registering", decodeEnvelope(t, w)["message"])
}

func TestUpdateEndpoint(t *testing.T) {
	r, userRepo := newAuthTestRouter()
	registerMike(t, r)

	w := doJSON(r, http.MethodPut, "/api/update", gin.H{
		"firstName": "Michael",
	}, map[string]string{"email": "mike@x.com"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeEnvelope(t, w)
	assert.Equal(t, "User updated successfully", body["message"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["authtoken"])
	user, ok := data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Michael", user["firstName"])
	assert.Equal(t, "Smith", user["lastName"])
	assert.NotEmpty(t, user["updatedAt"])

	assert.Equal(t, "Michael", userRepo.users["mike@x.com"].FirstName)
}

func TestUpdateEndpointMissingEmailHeader(t *testing.T) {
	r, _ := newAuthTestRouter()
	registerMike(t, r)

	w := doJSON(r, http.MethodPut, "/api/update", gin.H{
		"firstName": "Michael",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email not found in the request headers", decodeEnvelope(t, w)["message"])
}

func TestUpdateEndpointNoFields(t *testing.T) {
	r, _ := newAuthTestRouter()
	registerMike(t, r)

	w := doJSON(r, http.MethodPut, "/api/update", gin.H{}, map[string]string{"email": "mike@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No valid fields to update", decodeEnvelope(t, w)["message"])
}

func TestUpdateEndpointRejectsMalformedEmailField(t *testing.T) {
	r, userRepo := newAuthTestRouter()
	registerMike(t, r)

	w := doJSON(r, http.MethodPut, "/api/update", gin.H{
		"firstName": "Jane",
		"email":     "not-an-email",
	}, map[string]string{"email": "mike@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeEnvelope(t, w)
	assert.Equal(t, "Validation failed", body["message"])
	failures, ok := body["error"].([]any)
	require.True(t, ok)
	require.Len(t, failures, 1)
	failure, ok := failures[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "email", failure["field"])
	assert.Equal(t, "Invalid email address", failure["message"])

	assert.Equal(t, "Mike", userRepo.users["mike@x.com"].FirstName)
}

func TestUpdateEndpointRejectsShortPasswordField(t *testing.T) {
	r, _ := newAuthTestRouter()
	registerMike(t, r)

	w := doJSON(r, http.MethodPut, "/api/update", gin.H{
		"lastName": "Jones",
		"password": "abc",
	}, map[string]string{"email": "mike@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", decodeEnvelope(t, w)["message"])
}

func TestUpdateEndpointUnknownEmail(t *testing.T) {
	r, _ := newAuthTestRouter()

	w := doJSON(r, http.MethodPut, "/api/update", gin.H{
		"firstName": "Michael",
	}, map[string]string{"email": "nobody@x.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
