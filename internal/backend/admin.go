package backend

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/session"
)

// AdminClient calls the admin-scoped endpoints. The current token is
// sampled from the session store on every request.
type AdminClient struct {
	*Client
	tokens *session.Store
}

func NewAdminClient(client *Client, tokens *session.Store) *AdminClient {
	return &AdminClient{Client: client, tokens: tokens}
}

func (c *AdminClient) token() string {
	return c.tokens.Token()
}

// Login exchanges credentials for an admin token. The token is not
// stored here; the façade owns the session lifecycle.
func (c *AdminClient) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		envelope
		Token string `json:"token"`
	}
	if err := c.postJSON(ctx, "/api/admin/login", "", "", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// AllDoctors fetches the full doctor list.
func (c *AdminClient) AllDoctors(ctx context.Context) ([]model.Doctor, error) {
	var resp struct {
		envelope
		Doctors []model.Doctor `json:"doctors"`
	}
	if err := c.postJSON(ctx, "/api/admin/all-doctors", HeaderAdminToken, c.token(), struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.Doctors, nil
}

// ChangeAvailability toggles a doctor's availability flag server-side
// and returns the confirmation message.
func (c *AdminClient) ChangeAvailability(ctx context.Context, doctorID string) (string, error) {
	body := map[string]string{"docId": doctorID}
	var resp envelope
	if err := c.postJSON(ctx, "/api/admin/change-availability", HeaderAdminToken, c.token(), body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Appointments fetches every appointment visible to the admin.
func (c *AdminClient) Appointments(ctx context.Context) ([]model.Appointment, error) {
	var resp struct {
		envelope
		Appointments []model.Appointment `json:"appointments"`
	}
	if err := c.get(ctx, "/api/admin/appointments", HeaderAdminToken, c.token(), &resp); err != nil {
		return nil, err
	}
	return resp.Appointments, nil
}

// CancelAppointment cancels a booking and returns the confirmation
// message.
func (c *AdminClient) CancelAppointment(ctx context.Context, appointmentID string) (string, error) {
	body := map[string]string{"appointmentId": appointmentID}
	var resp envelope
	if err := c.postJSON(ctx, "/api/admin/cancel-appointment", HeaderAdminToken, c.token(), body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Dashboard fetches the admin aggregate snapshot.
func (c *AdminClient) Dashboard(ctx context.Context) (model.AdminDashboard, error) {
	var resp struct {
		envelope
		DashData model.AdminDashboard `json:"dashData"`
	}
	if err := c.get(ctx, "/api/admin/dashboard", HeaderAdminToken, c.token(), &resp); err != nil {
		return model.AdminDashboard{}, err
	}
	return resp.DashData, nil
}

// AddDoctor creates a doctor via multipart upload. Field keys must
// match the server's destructuring exactly; the address travels as a
// JSON-encoded string.
func (c *AdminClient) AddDoctor(ctx context.Context, form model.DoctorForm) (string, error) {
	address, err := json.Marshal(form.Address)
	if err != nil {
		return "", transportErr(err)
	}

	fields := map[string]string{
		"name":       form.Name,
		"email":      form.Email,
		"password":   form.Password,
		"experience": form.Experience,
		"fees":       strconv.Itoa(form.Fees),
		"about":      form.About,
		"speciality": form.Speciality,
		"degree":     form.Degree,
		"address":    string(address),
	}

	var resp envelope
	if err := c.postMultipart(ctx, "/api/admin/add-doctor", HeaderAdminToken, c.token(), fields, "image", form.ImageName, form.Image, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
