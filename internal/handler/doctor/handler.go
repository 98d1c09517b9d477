// Package doctor serves the doctor portal screens: dashboard and the
// appointment list with its complete/cancel actions.
package doctor

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/internal/handler"
	doctorsvc "github.com/jwalitptl/clinic-portal/internal/service/doctor"
	"github.com/jwalitptl/clinic-portal/pkg/httputil"
)

type Handler struct {
	svc *doctorsvc.Service
}

func NewHandler(svc *doctorsvc.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/appointments", h.Appointments)
	rg.POST("/appointments/:id/complete", h.CompleteAppointment)
	rg.POST("/appointments/:id/cancel", h.CancelAppointment)
}

type dashboardView struct {
	Earnings           int                       `json:"earnings"`
	Appointments       int                       `json:"appointments"`
	Patients           int                       `json:"patients"`
	LatestAppointments []handler.AppointmentView `json:"latestAppointments"`
}

func (h *Handler) Dashboard(c *gin.Context) {
	if err := h.svc.RefreshDashboard(c.Request.Context()); err != nil {
		handler.RespondFacadeError(c, err)
		return
	}

	dash, _ := h.svc.Dashboard()
	httputil.RespondWithSuccess(c, dashboardView{
		Earnings:           dash.Earnings,
		Appointments:       dash.Appointments,
		Patients:           dash.Patients,
		LatestAppointments: handler.NewAppointmentViews(dash.LatestAppointments, time.Now()),
	})
}

func (h *Handler) Appointments(c *gin.Context) {
	if err := h.svc.ListAppointments(c.Request.Context()); err != nil {
		handler.RespondFacadeError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, handler.NewAppointmentViews(h.svc.Appointments(), time.Now()))
}

func (h *Handler) CompleteAppointment(c *gin.Context) {
	if err := h.svc.CompleteAppointment(c.Request.Context(), c.Param("id")); err != nil {
		handler.RespondFacadeError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, handler.NewAppointmentViews(h.svc.Appointments(), time.Now()))
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	if err := h.svc.CancelAppointment(c.Request.Context(), c.Param("id")); err != nil {
		handler.RespondFacadeError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, handler.NewAppointmentViews(h.svc.Appointments(), time.Now()))
}
