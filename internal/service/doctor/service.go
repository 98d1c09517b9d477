// Package doctor is the data-access façade for the doctor portal.
// Same contract as the admin façade: the façade owns its collections,
// failures leave them untouched, and every mutation is followed by a
// sequential re-fetch of the appointment list and the dashboard.
package doctor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jwalitptl/clinic-portal/internal/backend"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/notice"
	"github.com/jwalitptl/clinic-portal/internal/session"
	"github.com/jwalitptl/clinic-portal/pkg/metrics"
)

type Service struct {
	api      *backend.DoctorClient
	sessions *session.Store
	notifier notice.Notifier
	metrics  *metrics.Metrics

	mu           sync.RWMutex
	appointments []model.Appointment
	dashboard    model.DoctorDashboard
	hasDashboard bool
}

func NewService(api *backend.DoctorClient, sessions *session.Store, notifier notice.Notifier, m *metrics.Metrics) *Service {
	return &Service{
		api:      api,
		sessions: sessions,
		notifier: notifier,
		metrics:  m,
	}
}

func (s *Service) fail(err error) error {
	s.notifier.Error(backend.UserMessage(err))
	return err
}

func (s *Service) observe(operation string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.ObserveBackend(string(session.RoleDoctor), operation, start, err)
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
			s.metrics.Logins.WithLabelValues(string(session.RoleDoctor), "failure").Inc()
		}
		return s.fail(err)
	}

	s.sessions.SetToken(token)
	if err := s.sessions.Persist(ctx); err != nil {
		return fmt.Errorf("failed to persist doctor token: %w", err)
	}
	if s.metrics != nil {
		s.metrics.Logins.WithLabelValues(string(session.RoleDoctor), "success").Inc()
	}
	return nil
}

// Logout clears the in-memory token and removes the durable copy.
func (s *Service) Logout(ctx context.Context) error {
	s.sessions.Clear()
	if s.metrics != nil {
		s.metrics.Logouts.WithLabelValues(string(session.RoleDoctor)).Inc()
	}
	if err := s.sessions.Discard(ctx); err != nil {
		return fmt.Errorf("failed to discard doctor token: %w", err)
	}
	return nil
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

// CompleteAppointment marks a booking completed, then re-fetches the
// appointment list and the dashboard sequentially. Terminal records
// are refused locally without a network call.
func (s *Service) CompleteAppointment(ctx context.Context, appointmentID string) error {
	if apt, ok := s.findAppointment(appointmentID); ok && apt.Terminal() {
		s.notifier.Error("Appointment is already " + apt.StatusLabel())
		return fmt.Errorf("appointment %s is terminal", appointmentID)
	}

	start := time.Now()
	message, err := s.api.CompleteAppointment(ctx, appointmentID)
	s.observe("complete_appointment", start, err)
	if err != nil {
		return s.fail(err)
	}

	s.notifier.Success(message)
	if err := s.ListAppointments(ctx); err != nil {
		return err
	}
	return s.RefreshDashboard(ctx)
}

// CancelAppointment cancels a booking under the same refetch contract.
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
func (s *Service) Dashboard() (model.DoctorDashboard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dashboard, s.hasDashboard
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
