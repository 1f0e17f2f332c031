package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/skillswap/pkg/metrics"
)

// MetricsMiddleware records request counts, latency and, for failed
// requests, the error code the handler answered with.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &recorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		status := strconv.Itoa(rec.status)
		metrics.RecordHTTPRequest(endpoint, r.Method, status)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, status, float64(time.Since(start).Microseconds())/1000)

		if rec.status < http.StatusBadRequest {
			return
		}
		code := rec.code
		if code == "" {
			code = "http_" + status
		}
		metrics.RecordErrorByEndpoint(endpoint, r.Method, code)
		metrics.RecordErrorByType(code, severity(rec.status))
	}
}

// severity ranks failures: server faults are high, refusals due to load or
// shutdown are medium, client mistakes are low.
func severity(status int) string {
	switch {
	case status == http.StatusTooManyRequests, status == http.StatusServiceUnavailable:
		return "medium"
	case status >= http.StatusInternalServerError:
		return "high"
	default:
		return "low"
	}
}

// codeRecorder is implemented by writers that want the error code of a
// failed response.
type codeRecorder interface {
	recordCode(code string)
}

// recorder captures the status and error code of a response.
type recorder struct {
	http.ResponseWriter
	status int
	code   string
}

func (rw *recorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("failed to write response: %w", err)
	}
	return n, nil
}

func (rw *recorder) recordCode(code string) { rw.code = code }
