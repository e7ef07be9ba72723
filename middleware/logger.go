package middleware

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

// ResponseRecorder wraps http.ResponseWriter to capture status and body size
type ResponseRecorder struct {
	http.ResponseWriter
	StatusCode int
	BodySize   int
}

// NewResponseRecorder creates a recorder defaulting to 200 OK
func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	return &ResponseRecorder{ResponseWriter: w, StatusCode: http.StatusOK}
}

func (r *ResponseRecorder) WriteHeader(code int) {
	r.StatusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *ResponseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.BodySize += n
	return n, err
}

func getStatusColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorGreen
	case statusCode >= 300 && statusCode < 400:
		return colorCyan
	case statusCode >= 400 && statusCode < 500:
		return colorYellow
	case statusCode >= 500:
		return colorRed
	default:
		return colorReset
	}
}

func getMethodColor(method string) string {
	switch method {
	case http.MethodGet:
		return colorBlue
	case http.MethodPost:
		return colorGreen
	case http.MethodDelete:
		return colorRed
	default:
		return colorPurple
	}
}

// LoggingMiddleware logs every request with method, path, status, size and
// duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := NewResponseRecorder(w)

		next.ServeHTTP(rec, r)

		log.Infof("%s%s%s %s %s%d%s %dB %v",
			getMethodColor(r.Method), r.Method, colorReset,
			r.URL.Path,
			getStatusColor(rec.StatusCode), rec.StatusCode, colorReset,
			rec.BodySize,
			time.Since(start))
	})
}
