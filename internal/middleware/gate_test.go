package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-portal/internal/gate"
	"github.com/jwalitptl/clinic-portal/internal/session"
)

type memRepo struct {
	tokens map[session.Role]string
}

func (r *memRepo) Load(_ context.Context, role session.Role) (string, error) {
	return r.tokens[role], nil
}

func (r *memRepo) Save(_ context.Context, role session.Role, token string) error {
	r.tokens[role] = token
	return nil
}

func (r *memRepo) Delete(_ context.Context, role session.Role) error {
	delete(r.tokens, role)
	return nil
}

func newTestGate(t *testing.T) (*gate.Gate, *session.Store, *session.Store) {
	t.Helper()
	ctx := context.Background()
	repo := &memRepo{tokens: make(map[session.Role]string)}

	admin, err := session.NewStore(ctx, session.RoleAdmin, repo)
	require.NoError(t, err)
	doctor, err := session.NewStore(ctx, session.RoleDoctor, repo)
	require.NoError(t, err)

	return gate.New(admin, doctor), admin, doctor
}

func newTestEngine(m *GateMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	admin := engine.Group("/admin", m.Require(gate.AdminSession))
	admin.GET("/dashboard", func(c *gin.Context) { c.Status(http.StatusOK) })
	doctor := engine.Group("/doctor", m.Require(gate.DoctorSession))
	doctor.GET("/dashboard", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.NoRoute(m.RedirectUnmatched())
	return engine
}

func TestRequireAdmitsMatchingState(t *testing.T) {
	g, admin, _ := newTestGate(t)
	admin.SetToken("a-token")
	engine := newTestEngine(NewGateMiddleware(g))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRedirectsMismatchedState(t *testing.T) {
	g, _, doctor := newTestGate(t)
	doctor.SetToken("d-token")
	engine := newTestEngine(NewGateMiddleware(g))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/doctor/dashboard", w.Header().Get("Location"))
}

func TestRequireRedirectsUnauthenticatedToLogin(t *testing.T) {
	g, _, _ := newTestGate(t)
	engine := newTestEngine(NewGateMiddleware(g))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/doctor/dashboard", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAdminPrecedenceOnDoctorTree(t *testing.T) {
	g, admin, doctor := newTestGate(t)
	admin.SetToken("a-token")
	doctor.SetToken("d-token")
	engine := newTestEngine(NewGateMiddleware(g))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/doctor/dashboard", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
}

func TestUnmatchedPathRedirects(t *testing.T) {
	g, admin, _ := newTestGate(t)
	admin.SetToken("a-token")
	engine := newTestEngine(NewGateMiddleware(g))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
}
