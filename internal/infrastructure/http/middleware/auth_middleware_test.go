package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-minutes/pkg/jwt"
)

func newServer(m *jwt.Manager) *echo.Echo {
	e := echo.New()
	g := e.Group("", EchoAuth(m))
	g.GET("/read", func(c echo.Context) error {
		claims, _ := GetClaims(c)
		return c.String(http.StatusOK, claims.Subject)
	})
	g.POST("/write", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, RequireWrite())
	return e
}

func TestEchoAuth(t *testing.T) {
	m := jwt.NewManager("secret", time.Hour, "")
	e := newServer(m)
	viewer, _ := m.GenerateAccessToken("dashboard", jwt.RoleViewer, 0)
	editor, _ := m.GenerateAccessToken("uploader", jwt.RoleEditor, 0)

	tests := []struct {
		name   string
		method string
		path   string
		setup  func(r *http.Request)
		want   int
	}{
		{name: "missing token", method: http.MethodGet, path: "/read", want: http.StatusUnauthorized},
		{name: "garbage token", method: http.MethodGet, path: "/read", setup: func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer nope")
		}, want: http.StatusUnauthorized},
		{name: "viewer reads", method: http.MethodGet, path: "/read", setup: func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+viewer)
		}, want: http.StatusOK},
		{name: "cookie token", method: http.MethodGet, path: "/read", setup: func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "access_token", Value: viewer})
		}, want: http.StatusOK},
		{name: "viewer cannot write", method: http.MethodPost, path: "/write", setup: func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+viewer)
		}, want: http.StatusForbidden},
		{name: "editor writes", method: http.MethodPost, path: "/write", setup: func(r *http.Request) {
			r.Header.Set("Authorization", "bearer "+editor)
		}, want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.setup != nil {
				tt.setup(req)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}
