package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/linkupge/linkup-backend/internal/domain"
)

type stubVerifier struct {
	userID string
	err    error
}

func (v *stubVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	if v.err != nil {
		return "", v.err
	}
	return v.userID, nil
}

func setupRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(verifier).RequireAuth(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		token, _ := GetToken(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "token": token})
	})
	return router
}

func TestRequireAuthMissingHeader(t *testing.T) {
	router := setupRouter(&stubVerifier{userID: "u1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	router := setupRouter(&stubVerifier{userID: "u1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	router := setupRouter(&stubVerifier{err: domain.ErrInvalidToken})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthPassesUserID(t *testing.T) {
	router := setupRouter(&stubVerifier{userID: "u1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"u1","token":"good-token"}`, w.Body.String())
}
