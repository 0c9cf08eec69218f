package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/viewtube/backend/internal/auth"
	"github.com/viewtube/backend/internal/query"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(jwtService *auth.JWTService, optional bool) (*gin.Engine, *query.Viewer) {
	router := gin.New()
	captured := &query.Viewer{}

	mw := AuthMiddleware(jwtService)
	if optional {
		mw = OptionalAuth(jwtService)
	}
	router.GET("/probe", mw, func(c *gin.Context) {
		*captured = Viewer(c)
		c.Status(http.StatusOK)
	})
	return router, captured
}

func TestAuthMiddleware_RejectsMissingToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 1)
	router, _ := newTestRouter(jwtService, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_RejectsMalformedHeader(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 1)
	router, _ := newTestRouter(jwtService, false)

	for _, header := range []string{"garbage", "Basic abc123", "Bearer"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want %d", header, w.Code, http.StatusUnauthorized)
		}
	}
}

func TestAuthMiddleware_AcceptsValidToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 1)
	router, captured := newTestRouter(jwtService, false)

	userID := primitive.NewObjectID()
	token, err := jwtService.GenerateToken(userID, "a@example.com", "alice")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	got, ok := captured.ID()
	if !ok {
		t.Fatal("handler saw an anonymous viewer")
	}
	if got != userID {
		t.Errorf("viewer id = %s, want %s", got.Hex(), userID.Hex())
	}
}

func TestOptionalAuth_AnonymousWithoutToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 1)
	router, captured := newTestRouter(jwtService, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if _, ok := captured.ID(); ok {
		t.Error("viewer should be anonymous without a token")
	}
}

func TestOptionalAuth_ResolvesValidToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 1)
	router, captured := newTestRouter(jwtService, true)

	userID := primitive.NewObjectID()
	token, err := jwtService.GenerateToken(userID, "a@example.com", "alice")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	got, ok := captured.ID()
	if !ok || got != userID {
		t.Errorf("viewer id = %v (authed=%v), want %s", got.Hex(), ok, userID.Hex())
	}
}

func TestOptionalAuth_IgnoresBadToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 1)
	router, captured := newTestRouter(jwtService, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if _, ok := captured.ID(); ok {
		t.Error("viewer should be anonymous for an invalid token")
	}
}
