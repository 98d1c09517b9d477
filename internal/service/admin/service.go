// Package admin is the data-access façade for the admin portal. It
// owns the admin-side collections (doctor list, appointment list,
// dashboard aggregate); screens only read snapshots. Mutations never
// patch held state: the server confirms first, then the affected
// collections are re-fetched sequentially.
package admin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/clinic-portal/internal/backend"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/notice"
	"github.com/jwalitptl/clinic-portal/internal/session"
	"github.com/jwalitptl/clinic-portal/pkg/metrics"
)

var validate = validator.New()

type Service struct {
	api      *backend.AdminClient
	sessions *session.Store
	notifier notice.Notifier
	metrics  *metrics.Metrics

	mu           sync.RWMutex
	doctors      []model.Doctor
	appointments []model.Appointment
	dashboard    model.AdminDashboard
	hasDashboard bool
}

func NewService(api *backend.AdminClient, sessions *session.Store, notifier notice.Notifier, m *metrics.Metrics) *Service {
	return &Service{
		api:      api,
		sessions: sessions,
		notifier: notifier,
		metrics:  m,
	}
}

// fail surfaces exactly one user-visible notice for a failed backend
// call and passes the error through. Held collections stay untouched.
func (s *Service) fail(err error) error {
	s.notifier.Error(backend.UserMessage(err))
	return err
}

func (s *Service) observe(operation string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.ObserveBackend(string(session.RoleAdmin), operation, start, err)
	}
}

// Login exchanges credentials for a token, stores it in memory and
// writes it through to durable storage.
func (s *Service) Login(ctx context.Context, email, password string) error {
	start := time.Now()
	token, err := s.api.Login(ctx, email, password)
	s.observe("login", start, err)
	if err != nil {
		if s.metrics != nil {
			s.metrics.Logins.WithLabelValues(string(session.RoleAdmin), "failure").Inc()
		}
		return s.fail(err)
	}

	s.sessions.SetToken(token)
	if err := s.sessions.Persist(ctx); err != nil {
		return fmt.Errorf("failed to persist admin token: %w", err)
	}
	if s.metrics != nil {
		s.metrics.Logins.WithLabelValues(string(session.RoleAdmin), "success").Inc()
	}
	return nil
}

// Logout clears the in-memory token and removes the durable copy.
func (s *Service) Logout(ctx context.Context) error {
	s.sessions.Clear()
	if s.metrics != nil {
		s.metrics.Logouts.WithLabelValues(string(session.RoleAdmin)).Inc()
	}
	if err := s.sessions.Discard(ctx); err != nil {
		return fmt.Errorf("failed to discard admin token: %w", err)
	}
	return nil
}

// ListDoctors replaces the held doctor list from the server.
func (s *Service) ListDoctors(ctx context.Context) error {
	start := time.Now()
	doctors, err := s.api.AllDoctors(ctx)
	s.observe("all_doctors", start, err)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.doctors = doctors
	s.mu.Unlock()
	return nil
}

// Doctors returns a snapshot of the held doctor list.
func (s *Service) Doctors() []model.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Doctor, len(s.doctors))
	copy(out, s.doctors)
	return out
}

// ChangeAvailability toggles a doctor's availability flag and re-runs
// the doctor list fetch so the held state reflects the server.
func (s *Service) ChangeAvailability(ctx context.Context, doctorID string) error {
	start := time.Now()
	message, err := s.api.ChangeAvailability(ctx, doctorID)
	s.observe("change_availability", start, err)
	if err != nil {
		return s.fail(err)
	}

	s.notifier.Success(message)
	return s.ListDoctors(ctx)
}

// ListAppointments replaces the held appointment list, newest first.
func (s *Service) ListAppointments(ctx context.Context) error {
	start := time.Now()
	appointments, err := s.api.Appointments(ctx)
	s.observe("appointments", start, err)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.appointments = model.NewestFirst(appointments)
	s.mu.Unlock()
	return nil
}

// Appointments returns a snapshot of the held appointment list.
func (s *Service) Appointments() []model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

// CancelAppointment cancels a booking. A record already cancelled or
// completed is refused locally without a network call. On success the
// appointment list and the dashboard aggregate are re-fetched, in that
// order, before the held state is trusted again.
func (s *Service) CancelAppointment(ctx context.Context, appointmentID string) error {
	if apt, ok := s.findAppointment(appointmentID); ok && apt.Terminal() {
		s.notifier.Error("Appointment is already " + apt.StatusLabel())
		return fmt.Errorf("appointment %s is terminal", appointmentID)
	}

	start := time.Now()
	message, err := s.api.CancelAppointment(ctx, appointmentID)
	s.observe("cancel_appointment", start, err)
	if err != nil {
		return s.fail(err)
	}

	s.notifier.Success(message)
	if err := s.ListAppointments(ctx); err != nil {
		return err
	}
	return s.RefreshDashboard(ctx)
}

// RefreshDashboard replaces the dashboard aggregate wholesale.
func (s *Service) RefreshDashboard(ctx context.Context) error {
	start := time.Now()
	dashboard, err := s.api.Dashboard(ctx)
	s.observe("dashboard", start, err)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.dashboard = dashboard
	s.hasDashboard = true
	s.mu.Unlock()
	return nil
}

// Dashboard returns the held aggregate and whether one has been
// fetched yet.
func (s *Service) Dashboard() (model.AdminDashboard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dashboard, s.hasDashboard
}

// AddDoctor validates the form locally, uploads it with the image and
// resets the form to its defaults on success. A missing image is the
// one client-side-validated precondition: it produces a notice and no
// network call.
func (s *Service) AddDoctor(ctx context.Context, form *model.DoctorForm) error {
	if !form.HasImage() {
		s.notifier.Error("Image Not Selected")
		return fmt.Errorf("doctor image is required")
	}
	if err := validate.Struct(form); err != nil {
		s.notifier.Error(err.Error())
		return fmt.Errorf("invalid doctor form: %w", err)
	}

	start := time.Now()
	message, err := s.api.AddDoctor(ctx, *form)
	s.observe("add_doctor", start, err)
	if err != nil {
		return s.fail(err)
	}

	if message == "" {
		message = "Doctor Added"
	}
	s.notifier.Success(message)
	form.Reset()
	return nil
}

func (s *Service) findAppointment(id string) (model.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, apt := range s.appointments {
		if apt.ID == id {
			return apt, true
		}
	}
	return model.Appointment{}, false
}
