package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TaylorONeal/jetsweep/internal/api/middleware"
	"github.com/TaylorONeal/jetsweep/internal/api/models"
	"github.com/TaylorONeal/jetsweep/internal/api/response"
)

func requestWithID(method, path, id string) *http.Request {
	req := httptest.NewRequest(method, path, http.NoBody)
	return req.WithContext(middleware.WithRequestID(req.Context(), id))
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) models.Problem {
	t.Helper()
	var p models.Problem
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to decode problem: %v", err)
	}
	return p
}

func TestJSON_IncludesRequestID(t *testing.T) {
	req := requestWithID(http.MethodGet, "/v1/airports", "req_abc123")
	rec := httptest.NewRecorder()

	response.JSON(rec, req, http.StatusOK, map[string]string{"code": "ATL"})

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-Request-Id"); got != "req_abc123" {
		t.Errorf("expected X-Request-Id req_abc123, got %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("expected Content-Type application/json, got %q", got)
	}
	if got := rec.Body.String(); got != "{\"code\":\"ATL\"}\n" {
		t.Errorf("unexpected body %q", got)
	}
}

func TestJSON_WithoutRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	rec := httptest.NewRecorder()

	response.JSON(rec, req, http.StatusOK, nil)

	if got := rec.Header().Get("X-Request-Id"); got != "" {
		t.Errorf("expected no X-Request-Id header when not in context, got %q", got)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body for nil data, got %q", rec.Body.String())
	}
}

func TestNoContent(t *testing.T) {
	req := requestWithID(http.MethodDelete, "/v1/recent-searches", "req_del")
	rec := httptest.NewRecorder()

	response.NoContent(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-Request-Id"); got != "req_del" {
		t.Errorf("expected X-Request-Id req_del, got %q", got)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body for 204, got %q", rec.Body.String())
	}
}

func TestProblemHelpers(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter, r *http.Request)
		status int
		typ    string
	}{
		{
			name: "bad request",
			write: func(w http.ResponseWriter, r *http.Request) {
				response.BadRequest(w, r, "invalid body", []models.FieldError{{Field: "tripType", Message: "invalid"}})
			},
			status: http.StatusBadRequest,
			typ:    models.ProblemTypeValidation,
		},
		{
			name:   "not found",
			write:  func(w http.ResponseWriter, r *http.Request) { response.NotFound(w, r, "no such route") },
			status: http.StatusNotFound,
			typ:    models.ProblemTypeNotFound,
		},
		{
			name:   "internal error",
			write:  func(w http.ResponseWriter, r *http.Request) { response.InternalError(w, r, "boom") },
			status: http.StatusInternalServerError,
			typ:    models.ProblemTypeInternal,
		},
		{
			name:   "service unavailable",
			write:  func(w http.ResponseWriter, r *http.Request) { response.ServiceUnavailable(w, r, "store down", 0) },
			status: http.StatusServiceUnavailable,
			typ:    models.ProblemTypeUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestWithID(http.MethodGet, "/v1/some/path", "req_xyz")
			rec := httptest.NewRecorder()

			tt.write(rec, req)

			if rec.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, rec.Code)
			}
			if got := rec.Header().Get("Content-Type"); got != "application/problem+json" {
				t.Errorf("expected problem content type, got %q", got)
			}

			p := decodeProblem(t, rec)
			if p.Type != tt.typ {
				t.Errorf("expected type %q, got %q", tt.typ, p.Type)
			}
			if p.Instance != "/v1/some/path" {
				t.Errorf("expected instance /v1/some/path, got %q", p.Instance)
			}
			if p.TraceID != "req_xyz" {
				t.Errorf("expected traceId req_xyz, got %q", p.TraceID)
			}
		})
	}
}

func TestServiceUnavailable_RetryAfter(t *testing.T) {
	req := requestWithID(http.MethodGet, "/v1/ops/ready", "req_1")
	rec := httptest.NewRecorder()

	response.ServiceUnavailable(rec, req, "store down", 30*time.Second)

	if got := rec.Header().Get("Retry-After"); got != "30" {
		t.Errorf("expected Retry-After 30, got %q", got)
	}
}
