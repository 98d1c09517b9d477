// Package admin serves the admin portal screens: dashboard,
// appointment list, doctor list and the add-doctor form. Handlers
// render from the façade's collections and invoke its operations; the
// add-doctor form is the one piece of screen-local state.
package admin

import (
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/internal/handler"
	"github.com/jwalitptl/clinic-portal/internal/model"
	adminsvc "github.com/jwalitptl/clinic-portal/internal/service/admin"
	perrors "github.com/jwalitptl/clinic-portal/pkg/errors"
	"github.com/jwalitptl/clinic-portal/pkg/httputil"
)

type Handler struct {
	svc *adminsvc.Service

	mu   sync.Mutex
	form model.DoctorForm
}

func NewHandler(svc *adminsvc.Service) *Handler {
	return &Handler{
		svc:  svc,
		form: model.NewDoctorForm(),
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/appointments", h.Appointments)
	rg.POST("/appointments/:id/cancel", h.CancelAppointment)
	rg.GET("/doctors", h.Doctors)
	rg.POST("/doctors/:id/availability", h.ChangeAvailability)
	rg.GET("/doctors/new", h.DoctorForm)
	rg.POST("/doctors", h.AddDoctor)
}

type dashboardView struct {
	TotalEarnings      int                       `json:"totalEarnings"`
	Doctors            int                       `json:"doctors"`
	Appointments       int                       `json:"appointments"`
	Patients           int                       `json:"patients"`
	AppointmentTrends  model.ChartSeries         `json:"appointmentTrends"`
	SpecialtyData      model.ChartSeries         `json:"specialtyData"`
	LatestAppointments []handler.AppointmentView `json:"latestAppointments"`
}

// Dashboard re-fetches the aggregate (screen mount behavior) and
// renders it. Empty trend or specialty payloads degrade to empty
// series.
func (h *Handler) Dashboard(c *gin.Context) {
	if err := h.svc.RefreshDashboard(c.Request.Context()); err != nil {
		handler.RespondFacadeError(c, err)
		return
	}

	dash, _ := h.svc.Dashboard()
	httputil.RespondWithSuccess(c, dashboardView{
		TotalEarnings:      dash.TotalEarnings,
		Doctors:            dash.Doctors,
		Appointments:       dash.Appointments,
		Patients:           dash.Patients,
		AppointmentTrends:  model.NewChartSeries(dash.AppointmentTrends),
		SpecialtyData:      model.NewChartSeries(dash.SpecialtyData),
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

func (h *Handler) CancelAppointment(c *gin.Context) {
	if err := h.svc.CancelAppointment(c.Request.Context(), c.Param("id")); err != nil {
		handler.RespondFacadeError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, handler.NewAppointmentViews(h.svc.Appointments(), time.Now()))
}

func (h *Handler) Doctors(c *gin.Context) {
	if err := h.svc.ListDoctors(c.Request.Context()); err != nil {
		handler.RespondFacadeError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, h.svc.Doctors())
}

func (h *Handler) ChangeAvailability(c *gin.Context) {
	if err := h.svc.ChangeAvailability(c.Request.Context(), c.Param("id")); err != nil {
		handler.RespondFacadeError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, h.svc.Doctors())
}

// DoctorForm returns the current add-doctor form state so the screen
// can render what the user has entered so far.
func (h *Handler) DoctorForm(c *gin.Context) {
	h.mu.Lock()
	form := h.form
	h.mu.Unlock()
	httputil.RespondWithSuccess(c, formView(form))
}

type addDoctorRequest struct {
	Name       string `form:"name"`
	Email      string `form:"email"`
	Password   string `form:"password"`
	Experience string `form:"experience"`
	Fees       int    `form:"fees"`
	About      string `form:"about"`
	Speciality string `form:"speciality"`
	Degree     string `form:"degree"`
	Address1   string `form:"address1"`
	Address2   string `form:"address2"`
}

// AddDoctor submits the form. The image is read here; whether it is
// present is the façade's precondition to check, not ours.
func (h *Handler) AddDoctor(c *gin.Context) {
	var req addDoctorRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.RespondWithError(c, perrors.NewBadRequest(err.Error(), err))
		return
	}

	var image []byte
	var imageName string
	if file, err := c.FormFile("image"); err == nil {
		f, err := file.Open()
		if err != nil {
			httputil.RespondWithError(c, perrors.NewBadRequest("could not read image", err))
			return
		}
		defer f.Close()
		image, err = io.ReadAll(f)
		if err != nil {
			httputil.RespondWithError(c, perrors.NewBadRequest("could not read image", err))
			return
		}
		imageName = file.Filename
	}

	h.mu.Lock()
	h.form = model.DoctorForm{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Experience: req.Experience,
		Fees:       req.Fees,
		About:      req.About,
		Speciality: req.Speciality,
		Degree:     req.Degree,
		Address:    model.Address{Line1: req.Address1, Line2: req.Address2},
		Image:      image,
		ImageName:  imageName,
	}
	err := h.svc.AddDoctor(c.Request.Context(), &h.form)
	form := h.form
	h.mu.Unlock()

	if err != nil {
		handler.RespondFacadeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httputil.Response{Success: true, Data: formView(form)})
}

// formView strips the credentials and raw upload from the form state
// before it leaves the process.
func formView(form model.DoctorForm) gin.H {
	return gin.H{
		"name":       form.Name,
		"email":      form.Email,
		"experience": form.Experience,
		"fees":       form.Fees,
		"about":      form.About,
		"speciality": form.Speciality,
		"degree":     form.Degree,
		"address":    form.Address,
		"hasImage":   form.HasImage(),
	}
}
