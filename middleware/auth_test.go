package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"stylehive/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func okHandler(captured **utils.Claims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := r.Context().Value(UserContextKey).(*utils.Claims); ok {
			*captured = claims
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	utils.JwtKey = []byte("test-secret")
	uid := primitive.NewObjectID().Hex()
	token, err := utils.GenerateJWT(uid, "asha@example.com", "user")
	require.NoError(t, err)

	var claims *utils.Claims
	req := httptest.NewRequest(http.MethodGet, "/cart/get", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	AuthMiddleware(okHandler(&claims)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, claims)
	assert.Equal(t, uid, claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.False(t, claims.IsAdmin())
}

func TestAuthMiddlewareRejections(t *testing.T) {
	utils.JwtKey = []byte("test-secret")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var claims *utils.Claims
			req := httptest.NewRequest(http.MethodGet, "/cart/get", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(okHandler(&claims)).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Nil(t, claims)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	var captured *utils.Claims
	handler := AdminMiddleware(okHandler(&captured))

	admin := &utils.Claims{UserID: primitive.NewObjectID().Hex(), Role: "admin"}
	req := httptest.NewRequest(http.MethodGet, "/order/admin/orders", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserContextKey, admin))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	user := &utils.Claims{UserID: primitive.NewObjectID().Hex(), Role: "user"}
	req = httptest.NewRequest(http.MethodGet, "/order/admin/orders", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserContextKey, user))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
