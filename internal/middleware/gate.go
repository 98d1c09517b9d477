package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/internal/gate"
)

// GateMiddleware admits requests into exactly one route tree based on
// the route gate's current state, sampled per request.
type GateMiddleware struct {
	gate *gate.Gate
}

func NewGateMiddleware(g *gate.Gate) *GateMiddleware {
	return &GateMiddleware{gate: g}
}

// Require admits the request only when the gate is in the given state;
// anything else is an unmatched path and redirects to the current
// state's default dashboard.
func (m *GateMiddleware) Require(state gate.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := m.gate.State()
		if current != state {
			c.Redirect(http.StatusFound, current.DefaultPath())
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectUnmatched sends any unknown path to the current state's
// default dashboard (or the login view when unauthenticated).
func (m *GateMiddleware) RedirectUnmatched() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, m.gate.State().DefaultPath())
	}
}
