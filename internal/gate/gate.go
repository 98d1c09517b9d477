// Package gate selects which route tree the portal renders. The
// selection is a pure function of the two session tokens, sampled on
// every request rather than driven by subscriptions.
package gate

import "github.com/jwalitptl/clinic-portal/internal/session"

// State is the route gate's current selection.
type State string

const (
	Unauthenticated State = "unauthenticated"
	AdminSession    State = "admin"
	DoctorSession   State = "doctor"
)

// Resolve picks exactly one state from the two tokens. The admin token
// takes precedence when both happen to be set.
func Resolve(adminToken, doctorToken string) State {
	switch {
	case adminToken == "" && doctorToken == "":
		return Unauthenticated
	case adminToken != "":
		return AdminSession
	default:
		return DoctorSession
	}
}

// DefaultPath is where unmatched paths redirect for a given state.
func (s State) DefaultPath() string {
	switch s {
	case AdminSession:
		return "/admin/dashboard"
	case DoctorSession:
		return "/doctor/dashboard"
	default:
		return "/login"
	}
}

// Gate samples both session stores.
type Gate struct {
	admin  *session.Store
	doctor *session.Store
}

func New(admin, doctor *session.Store) *Gate {
	return &Gate{admin: admin, doctor: doctor}
}

// State resolves the current selection from live tokens.
func (g *Gate) State() State {
	return Resolve(g.admin.Token(), g.doctor.Token())
}
