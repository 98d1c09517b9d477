package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/internal/backend"
	"github.com/jwalitptl/clinic-portal/internal/gate"
	adminsvc "github.com/jwalitptl/clinic-portal/internal/service/admin"
	doctorsvc "github.com/jwalitptl/clinic-portal/internal/service/doctor"
	perrors "github.com/jwalitptl/clinic-portal/pkg/errors"
	"github.com/jwalitptl/clinic-portal/pkg/httputil"
)

// Handler serves the login view's callbacks for both roles and the
// session probe the chrome uses to decide what to draw.
type Handler struct {
	adminSvc  *adminsvc.Service
	doctorSvc *doctorsvc.Service
	gate      *gate.Gate
}

func NewHandler(adminSvc *adminsvc.Service, doctorSvc *doctorsvc.Service, g *gate.Gate) *Handler {
	return &Handler{
		adminSvc:  adminSvc,
		doctorSvc: doctorSvc,
		gate:      g,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/login", h.LoginView)
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
	rg.GET("/session", h.Session)
}

type loginRequest struct {
	Role     string `json:"role" binding:"required,oneof=admin doctor"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginView is the one screen reachable while logged out. An active
// session is sent to its dashboard instead.
func (h *Handler) LoginView(c *gin.Context) {
	if state := h.gate.State(); state != gate.Unauthenticated {
		c.Redirect(http.StatusFound, state.DefaultPath())
		return
	}
	httputil.RespondWithSuccess(c, gin.H{
		"roles": []string{"admin", "doctor"},
	})
}

func (h *Handler) Login(c *gin.Context) {
	if state := h.gate.State(); state != gate.Unauthenticated {
		c.Redirect(http.StatusFound, state.DefaultPath())
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, perrors.NewBadRequest(err.Error(), err))
		return
	}

	var err error
	if req.Role == "admin" {
		err = h.adminSvc.Login(c.Request.Context(), req.Email, req.Password)
	} else {
		err = h.doctorSvc.Login(c.Request.Context(), req.Email, req.Password)
	}
	if err != nil {
		httputil.RespondWithError(c, perrors.NewUnauthorized(backend.UserMessage(err), err))
		return
	}

	httputil.RespondWithSuccess(c, gin.H{
		"role":     req.Role,
		"redirect": h.gate.State().DefaultPath(),
	})
}

// Logout clears whichever session is active. With no session it is a
// no-op redirect back to the login view.
func (h *Handler) Logout(c *gin.Context) {
	var err error
	switch h.gate.State() {
	case gate.AdminSession:
		err = h.adminSvc.Logout(c.Request.Context())
	case gate.DoctorSession:
		err = h.doctorSvc.Logout(c.Request.Context())
	}
	if err != nil {
		httputil.RespondWithError(c, perrors.NewInternal(err))
		return
	}

	httputil.RespondWithSuccess(c, gin.H{
		"redirect": gate.Unauthenticated.DefaultPath(),
	})
}

func (h *Handler) Session(c *gin.Context) {
	state := h.gate.State()
	httputil.RespondWithSuccess(c, gin.H{
		"state":    state,
		"redirect": state.DefaultPath(),
	})
}
