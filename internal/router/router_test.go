package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// named returns a handler that echoes its name so tests can see which route matched.
func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, name)
	}
}

// tagged returns a middleware that records its name in a response header.
func tagged(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Middleware", name)
			next.ServeHTTP(w, r)
		})
	}
}

func newTestRouter() http.Handler {
	return New(Routes{
		Welcome:      named("welcome"),
		GetUser:      named("get-user"),
		CreateUser:   named("create-user"),
		ListCourses:  named("list-courses"),
		GetCourse:    named("get-course"),
		CreateCourse: named("create-course"),
		UpdateCourse: named("update-course"),
		DeleteCourse: named("delete-course"),
		Auth:         tagged("auth"),
		Tx:           tagged("tx"),
	})
}

func TestRouter(t *testing.T) {
	tests := []struct {
		method      string
		path        string
		wantBody    string
		middlewares []string
	}{
		{http.MethodGet, "/", "welcome", nil},
		{http.MethodGet, "/api/users", "get-user", []string{"auth"}},
		{http.MethodPost, "/api/users", "create-user", nil},
		{http.MethodGet, "/api/courses", "list-courses", nil},
		{http.MethodGet, "/api/courses/1", "get-course", nil},
		{http.MethodPost, "/api/courses", "create-course", []string{"auth", "tx"}},
		{http.MethodPut, "/api/courses/1", "update-course", []string{"auth", "tx"}},
		{http.MethodDelete, "/api/courses/1", "delete-course", []string{"auth", "tx"}},
	}

	r := newTestRouter()

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
			assert.Equal(t, tt.middlewares, rr.Header().Values("X-Middleware"))
			assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_NotFound(t *testing.T) {
	r := newTestRouter()

	for _, path := range []string{"/nope", "/api/nope", "/api/courses/1/extra"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()

		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.JSONEq(t, `{"error":{"message":"Route Not Found"}}`, rr.Body.String(), path)
	}
}

func TestRouter_UnsupportedMethodIsRouteNotFound(t *testing.T) {
	r := newTestRouter()

	for _, tc := range []struct{ method, path string }{
		{http.MethodPatch, "/api/courses/1"},
		{http.MethodDelete, "/api/users"},
		{http.MethodPost, "/"},
		{http.MethodPut, "/api/courses"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rr := httptest.NewRecorder()

		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code, tc.method+" "+tc.path)
		assert.JSONEq(t, `{"error":{"message":"Route Not Found"}}`, rr.Body.String(), tc.method+" "+tc.path)
	}
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	r := New(Routes{
		Welcome: func(w http.ResponseWriter, r *http.Request) { panic("boom") },
		Auth:    tagged("auth"),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	require.NotPanics(t, func() { r.ServeHTTP(rr, req) })
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRouter_Swagger(t *testing.T) {
	r := New(Routes{
		Welcome:    named("welcome"),
		Auth:       tagged("auth"),
		SwaggerURL: "http://localhost:8080/swagger/doc.json",
	})

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "swagger")
}
