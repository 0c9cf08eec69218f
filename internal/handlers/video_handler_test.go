package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/viewtube/backend/internal/auth"
	"github.com/viewtube/backend/internal/middleware"
)

func uploadRequest(t *testing.T, token string, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := form.WriteField(k, v); err != nil {
			t.Fatalf("WriteField(%s) error: %v", k, err)
		}
	}
	if err := form.Close(); err != nil {
		t.Fatalf("form.Close() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/videos", &body)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", form.FormDataContentType())
	return req
}

func TestVideoUpload_RejectsMalformedDuration(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 1)
	token, err := jwtService.GenerateToken(primitive.NewObjectID(), "a@example.com", "alice")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	// Validation fires before any store or repository call, so the
	// handler needs no backing services here.
	h := NewVideoHandler(nil, nil, nil, logrus.New())
	router := gin.New()
	router.POST("/videos", middleware.AuthMiddleware(jwtService), h.Upload)

	tests := []struct {
		name     string
		duration string
	}{
		{"not a number", "abc"},
		{"negative", "-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, uploadRequest(t, token, map[string]string{
				"title":       "clip",
				"description": "a clip",
				"duration":    tt.duration,
			}))
			if w.Code != http.StatusBadRequest {
				t.Errorf("duration %q: status = %d, want %d", tt.duration, w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestVideoUpload_RequiresTitleAndDescription(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 1)
	token, err := jwtService.GenerateToken(primitive.NewObjectID(), "a@example.com", "alice")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	h := NewVideoHandler(nil, nil, nil, logrus.New())
	router := gin.New()
	router.POST("/videos", middleware.AuthMiddleware(jwtService), h.Upload)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, token, map[string]string{
		"description": "no title",
	}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
