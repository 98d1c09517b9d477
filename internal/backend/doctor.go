package backend

import (
	"context"

	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/session"
)

// DoctorClient calls the doctor-scoped endpoints.
type DoctorClient struct {
	*Client
	tokens *session.Store
}

func NewDoctorClient(client *Client, tokens *session.Store) *DoctorClient {
	return &DoctorClient{Client: client, tokens: tokens}
}

func (c *DoctorClient) token() string {
	return c.tokens.Token()
}

// Login exchanges credentials for a doctor token.
func (c *DoctorClient) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		envelope
		Token string `json:"token"`
	}
	if err := c.postJSON(ctx, "/api/doctor/login", "", "", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Appointments fetches the appointments assigned to this doctor, in
// the server's oldest-first order.
func (c *DoctorClient) Appointments(ctx context.Context) ([]model.Appointment, error) {
	var resp struct {
		envelope
		Appointments []model.Appointment `json:"appointments"`
	}
	if err := c.get(ctx, "/api/doctor/appointments", HeaderDoctorToken, c.token(), &resp); err != nil {
		return nil, err
	}
	return resp.Appointments, nil
}

// CompleteAppointment marks a booking completed and returns the
// confirmation message.
func (c *DoctorClient) CompleteAppointment(ctx context.Context, appointmentID string) (string, error) {
	body := map[string]string{"appointmentId": appointmentID}
	var resp envelope
	if err := c.postJSON(ctx, "/api/doctor/complete-appointment", HeaderDoctorToken, c.token(), body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// CancelAppointment cancels a booking and returns the confirmation
// message.
func (c *DoctorClient) CancelAppointment(ctx context.Context, appointmentID string) (string, error) {
	body := map[string]string{"appointmentId": appointmentID}
	var resp envelope
	if err := c.postJSON(ctx, "/api/doctor/cancel-appointment", HeaderDoctorToken, c.token(), body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Dashboard fetches the doctor aggregate snapshot.
func (c *DoctorClient) Dashboard(ctx context.Context) (model.DoctorDashboard, error) {
	var resp struct {
		envelope
		DashData model.DoctorDashboard `json:"dashData"`
	}
	if err := c.get(ctx, "/api/doctor/dashboard", HeaderDoctorToken, c.token(), &resp); err != nil {
		return model.DoctorDashboard{}, err
	}
	return resp.DashData, nil
}
