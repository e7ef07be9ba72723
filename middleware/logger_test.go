package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetStatusColor(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		expected   string
	}{
		{"2xx Success - Green", http.StatusOK, "\033[32m"},
		{"3xx Redirect - Cyan", http.StatusFound, "\033[36m"},
		{"4xx Client Error - Yellow", http.StatusNotFound, "\033[33m"},
		{"429 Too Many Requests - Yellow", http.StatusTooManyRequests, "\033[33m"},
		{"5xx Server Error - Red", http.StatusInternalServerError, "\033[31m"},
		{"Edge case - 100 Continue", http.StatusContinue, "\033[0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := getStatusColor(tt.statusCode)
			if result != tt.expected {
				t.Errorf("Expected color code %q for status %d, got %q", tt.expected, tt.statusCode, result)
			}
		})
	}
}

func TestNewResponseRecorder(t *testing.T) {
	w := httptest.NewRecorder()
	rec := NewResponseRecorder(w)

	if rec == nil {
		t.Fatal("Expected ResponseRecorder to be created, got nil")
	}
	if rec.StatusCode != http.StatusOK {
		t.Errorf("Expected default status code %d, got %d", http.StatusOK, rec.StatusCode)
	}
	if rec.BodySize != 0 {
		t.Errorf("Expected initial body size 0, got %d", rec.BodySize)
	}
}

func TestResponseRecorderCapturesStatusAndSize(t *testing.T) {
	w := httptest.NewRecorder()
	rec := NewResponseRecorder(w)

	rec.WriteHeader(http.StatusTeapot)
	rec.Write([]byte("hello"))

	if rec.StatusCode != http.StatusTeapot {
		t.Errorf("Expected status %d, got %d", http.StatusTeapot, rec.StatusCode)
	}
	if rec.BodySize != 5 {
		t.Errorf("Expected body size 5, got %d", rec.BodySize)
	}
}

func TestLoggingMiddleware(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("created"))
	})

	req := httptest.NewRequest(http.MethodPost, "/command", nil)
	w := httptest.NewRecorder()

	LoggingMiddleware(handler).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected the wrapped handler's status, got %d", w.Code)
	}
	if w.Body.String() != "created" {
		t.Errorf("Expected the wrapped handler's body, got %q", w.Body.String())
	}
}
