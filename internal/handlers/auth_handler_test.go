package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AtelierAutoPro/garage-manager/internal/config"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
)

func TestLoginReturnsUsableToken(t *testing.T) {
	db := setupTestDB(t)
	cfg := &config.Config{JWTSecret: "test-secret"}

	hashed, err := bcrypt.GenerateFromPassword([]byte("motdepasse"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Nom:          "Dupont",
		Email:        fmt.Sprintf("login-%s@test.fr", t.Name()),
		PasswordHash: string(hashed),
		Role:         models.RoleGarage,
	}
	require.NoError(t, db.Create(&user).Error)

	h := NewAuthHandler(db, cfg)
	r := newTestRouter()
	r.POST("/auth/login", h.Login)

	body := fmt.Sprintf(`{"email":%q,"password":"motdepasse"}`, user.Email)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(user.ID), claims["sub"])
	assert.Equal(t, models.RoleGarage, claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	cfg := &config.Config{JWTSecret: "test-secret"}

	hashed, err := bcrypt.GenerateFromPassword([]byte("motdepasse"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Nom:          "Dupont",
		Email:        fmt.Sprintf("login-%s@test.fr", t.Name()),
		PasswordHash: string(hashed),
		Role:         models.RoleClient,
	}
	require.NoError(t, db.Create(&user).Error)

	h := NewAuthHandler(db, cfg)
	r := newTestRouter()
	r.POST("/auth/login", h.Login)

	body := fmt.Sprintf(`{"email":%q,"password":"mauvais"}`, user.Email)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_credentials")
}

func TestLoginUnknownEmail(t *testing.T) {
	db := setupTestDB(t)

	h := NewAuthHandler(db, &config.Config{JWTSecret: "test-secret"})
	r := newTestRouter()
	r.POST("/auth/login", h.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"inconnu@test.fr","password":"motdepasse"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
