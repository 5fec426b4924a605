package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := New("test")
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/daily-plans/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Handle("/metrics", m.Handler())

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/daily-plans/"+id, nil))
	}
	m.ObserveAI("structured", "ok")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	out := string(body)

	want := `test_http_requests_total{method="GET",route="/daily-plans/{id}",status="204"} 2`
	if !strings.Contains(out, want) {
		t.Errorf("metrics output missing %q", want)
	}
	if !strings.Contains(out, `test_ai_generations_total{mode="structured",outcome="ok"} 1`) {
		t.Error("metrics output missing ai counter")
	}
}
