package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/internal/backend"
	"github.com/jwalitptl/clinic-portal/internal/model"
	perrors "github.com/jwalitptl/clinic-portal/pkg/errors"
	"github.com/jwalitptl/clinic-portal/pkg/httputil"
)

// PersonView is the patient or doctor snapshot shown in a row.
type PersonView struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Age   int    `json:"age,omitempty"`
}

// AppointmentView is the plain row data the appointment tables render.
type AppointmentView struct {
	ID        string     `json:"id"`
	Patient   PersonView `json:"patient"`
	Doctor    PersonView `json:"doctor"`
	SlotDate  string     `json:"slotDate"`
	SlotTime  string     `json:"slotTime"`
	Amount    int        `json:"amount"`
	Paid      bool       `json:"payment"`
	Status    string     `json:"status"`
	Cancelled bool       `json:"cancelled"`
	Completed bool       `json:"completed"`
}

// NewAppointmentView flattens a record into display form: formatted
// slot date, computed patient age, status badge.
func NewAppointmentView(a model.Appointment, now time.Time) AppointmentView {
	return AppointmentView{
		ID: a.ID,
		Patient: PersonView{
			Name:  a.UserData.Name,
			Image: a.UserData.Image,
			Age:   model.AgeFromDOB(a.UserData.DOB, now),
		},
		Doctor: PersonView{
			Name:  a.DocData.Name,
			Image: a.DocData.Image,
		},
		SlotDate:  model.FormatSlotDate(a.SlotDate),
		SlotTime:  a.SlotTime,
		Amount:    a.Amount,
		Paid:      a.Payment,
		Status:    a.StatusLabel(),
		Cancelled: a.Cancelled,
		Completed: a.IsCompleted,
	}
}

// NewAppointmentViews maps a list, preserving order.
func NewAppointmentViews(appointments []model.Appointment, now time.Time) []AppointmentView {
	views := make([]AppointmentView, len(appointments))
	for i, a := range appointments {
		views[i] = NewAppointmentView(a, now)
	}
	return views
}

// RespondFacadeError translates a façade failure for the local
// surface: backend errors become upstream failures carrying the
// user-visible message, anything else was refused locally.
func RespondFacadeError(c *gin.Context, err error) {
	var apiErr *backend.Error
	if errors.As(err, &apiErr) {
		httputil.RespondWithError(c, perrors.NewUpstream(backend.UserMessage(err), err))
		return
	}
	httputil.RespondWithError(c, perrors.NewBadRequest(err.Error(), err))
}
