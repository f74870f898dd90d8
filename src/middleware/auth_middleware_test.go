package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt"
)

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

func TestJWTAuthMiddlewareValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString := signedToken(t, "test-secret", jwt.MapClaims{
		"user_id":  float64(7),
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	var gotUserID int64
	var gotUsername string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value("user_id").(int64)
		gotUsername, _ = r.Context().Value("username").(string)
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/7", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	JWTAuthMiddleware(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotUserID != 7 || gotUsername != "alice" {
		t.Fatalf("expected user 7/alice in context, got %d/%s", gotUserID, gotUsername)
	}
}

func TestJWTAuthMiddlewareRejects(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called")
	})

	// Missing token
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/7", nil)
	JWTAuthMiddleware(next).ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", rr.Code)
	}

	// Wrong secret
	tokenString := signedToken(t, "other-secret", jwt.MapClaims{
		"user_id":  float64(7),
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/users/7", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	JWTAuthMiddleware(next).ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("wrong secret: expected 401, got %d", rr.Code)
	}

	// Expired token
	tokenString = signedToken(t, "test-secret", jwt.MapClaims{
		"user_id":  float64(7),
		"username": "alice",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/users/7", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	JWTAuthMiddleware(next).ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expired token: expected 401, got %d", rr.Code)
	}
}

func scopedRequest(userCtxID int64, pathUserID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/users/"+pathUserID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("user_id", pathUserID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, "user_id", userCtxID)
	return req.WithContext(ctx)
}

func TestUserScopeMiddleware(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rr := httptest.NewRecorder()
	UserScopeMiddleware(next).ServeHTTP(rr, scopedRequest(5, "5"))
	if rr.Code != http.StatusOK || !called {
		t.Fatalf("matching user: expected 200 and next called, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	UserScopeMiddleware(next).ServeHTTP(rr, scopedRequest(5, "6"))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("mismatched user: expected 403, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	UserScopeMiddleware(next).ServeHTTP(rr, scopedRequest(5, "abc"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad user id: expected 400, got %d", rr.Code)
	}
}
