package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/turntable/internal/shared"
)

type pingHandler struct{}

func (pingHandler) Routes() []string { return []string{"GET /ping", "GET /pong"} }

func (pingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(strings.TrimPrefix(r.URL.Path, "/")))
}

func TestBasicRouter(t *testing.T) {
	t.Run("routes by method", func(t *testing.T) {
		r := NewBasicRouter()
		r.HandleFunc(http.MethodPost, "/things", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})

		tests := []struct {
			method string
			want   int
		}{
			{http.MethodPost, http.StatusCreated},
			{http.MethodGet, http.StatusMethodNotAllowed},
		}
		for _, tt := range tests {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, "/things", nil))
			if rec.Code != tt.want {
				t.Errorf("%s: expected %d, got %d", tt.method, tt.want, rec.Code)
			}
		}
	})

	t.Run("applies middleware in the order added", func(t *testing.T) {
		var order []string
		tag := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		r := NewBasicRouter()
		r.Use(tag("first"), tag("second"))
		r.HandleFunc(http.MethodGet, "/", func(http.ResponseWriter, *http.Request) { order = append(order, "handler") })
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if strings.Join(order, ",") != "first,second,handler" {
			t.Errorf("expected first,second,handler, got %v", order)
		}
	})

	t.Run("registers every handler route", func(t *testing.T) {
		r := NewBasicRouter()
		r.Handler(pingHandler{})

		for _, path := range []string{"/ping", "/pong"} {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			if rec.Body.String() != strings.TrimPrefix(path, "/") {
				t.Errorf("expected %s, got %q", path, rec.Body.String())
			}
		}
	})
}

func TestRecover(t *testing.T) {
	r := NewBasicRouter()
	r.Use(Recover(shared.DiscardLogger()), RequestLogger(shared.DiscardLogger()))
	r.HandleFunc(http.MethodGet, "/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
