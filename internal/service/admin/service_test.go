package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-portal/internal/backend"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/notice"
	"github.com/jwalitptl/clinic-portal/internal/session"
	"github.com/jwalitptl/clinic-portal/pkg/metrics"
)

type memRepo struct {
	tokens map[session.Role]string
}

func (r *memRepo) Load(_ context.Context, role session.Role) (string, error) {
	return r.tokens[role], nil
}

func (r *memRepo) Save(_ context.Context, role session.Role, token string) error {
	r.tokens[role] = token
	return nil
}

func (r *memRepo) Delete(_ context.Context, role session.Role) error {
	delete(r.tokens, role)
	return nil
}

// fakeClinic stands in for the remote API. It records request paths in
// order and serves canned payloads per endpoint.
type fakeClinic struct {
	mu        sync.Mutex
	calls     []string
	responses map[string]any
}

func newFakeClinic() *fakeClinic {
	return &fakeClinic{responses: make(map[string]any)}
}

func (f *fakeClinic) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls = append(f.calls, r.URL.Path)
		resp, ok := f.responses[r.URL.Path]
		f.mu.Unlock()

		if !ok {
			resp = map[string]any{"success": true}
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func (f *fakeClinic) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeClinic) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeClinic) respond(path string, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[path] = body
}

func newTestService(t *testing.T) (*Service, *fakeClinic, *notice.Recorder, *memRepo) {
	t.Helper()

	clinic := newFakeClinic()
	srv := httptest.NewServer(clinic.handler())
	t.Cleanup(srv.Close)

	repo := &memRepo{tokens: map[session.Role]string{session.RoleAdmin: "admin-token"}}
	store, err := session.NewStore(context.Background(), session.RoleAdmin, repo)
	require.NoError(t, err)

	recorder := notice.NewRecorder()
	m := metrics.NewMetricsWith(prometheus.NewRegistry(), "test", "")
	api := backend.NewAdminClient(backend.New(srv.URL, 0), store)

	return NewService(api, store, recorder, m), clinic, recorder, repo
}

func TestLoginStoresAndPersistsToken(t *testing.T) {
	svc, clinic, recorder, repo := newTestService(t)
	clinic.respond("/api/admin/login", map[string]any{"success": true, "token": "fresh-token"})

	require.NoError(t, svc.Login(context.Background(), "admin@clinic.test", "pass"))

	assert.Equal(t, "fresh-token", repo.tokens[session.RoleAdmin])
	assert.Empty(t, recorder.Notices())
}

func TestLoginFailureEmitsOneNotice(t *testing.T) {
	svc, clinic, recorder, repo := newTestService(t)
	clinic.respond("/api/admin/login", map[string]any{"success": false, "message": "Invalid credentials"})

	err := svc.Login(context.Background(), "admin@clinic.test", "wrong")
	require.Error(t, err)

	require.Len(t, recorder.Notices(), 1)
	assert.Equal(t, notice.LevelError, recorder.Notices()[0].Level)
	assert.Equal(t, "Invalid credentials", recorder.Notices()[0].Message)
	// Stored token untouched by the failed attempt.
	assert.Equal(t, "admin-token", repo.tokens[session.RoleAdmin])
}

func TestLogoutClearsBothCopies(t *testing.T) {
	svc, _, _, repo := newTestService(t)

	require.NoError(t, svc.Logout(context.Background()))

	_, ok := repo.tokens[session.RoleAdmin]
	assert.False(t, ok)
}

func TestListDoctorsReplacesHeldList(t *testing.T) {
	svc, clinic, _, _ := newTestService(t)
	clinic.respond("/api/admin/all-doctors", map[string]any{
		"success": true,
		"doctors": []model.Doctor{{ID: "d1", Name: "Dr. One"}, {ID: "d2", Name: "Dr. Two"}},
	})

	require.NoError(t, svc.ListDoctors(context.Background()))
	require.Len(t, svc.Doctors(), 2)

	clinic.respond("/api/admin/all-doctors", map[string]any{
		"success": true,
		"doctors": []model.Doctor{{ID: "d3", Name: "Dr. Three"}},
	})

	require.NoError(t, svc.ListDoctors(context.Background()))
	doctors := svc.Doctors()
	require.Len(t, doctors, 1)
	assert.Equal(t, "d3", doctors[0].ID)
}

func TestListDoctorsFailureLeavesStateUntouched(t *testing.T) {
	svc, clinic, recorder, _ := newTestService(t)
	clinic.respond("/api/admin/all-doctors", map[string]any{
		"success": true,
		"doctors": []model.Doctor{{ID: "d1"}},
	})
	require.NoError(t, svc.ListDoctors(context.Background()))

	clinic.respond("/api/admin/all-doctors", map[string]any{"success": false, "message": "Not Authorized"})
	err := svc.ListDoctors(context.Background())
	require.Error(t, err)

	// Held list untouched, exactly one error notice.
	require.Len(t, svc.Doctors(), 1)
	assert.Equal(t, "d1", svc.Doctors()[0].ID)
	require.Len(t, recorder.Notices(), 1)
	assert.Equal(t, notice.LevelError, recorder.Notices()[0].Level)
	assert.Equal(t, "Not Authorized", recorder.Notices()[0].Message)
}

func TestChangeAvailabilityRefetchesDoctors(t *testing.T) {
	svc, clinic, recorder, _ := newTestService(t)
	clinic.respond("/api/admin/change-availability", map[string]any{"success": true, "message": "Availability Changed"})
	clinic.respond("/api/admin/all-doctors", map[string]any{
		"success": true,
		"doctors": []model.Doctor{{ID: "d1", Available: false}},
	})

	require.NoError(t, svc.ChangeAvailability(context.Background(), "d1"))

	assert.Equal(t, []string{"/api/admin/change-availability", "/api/admin/all-doctors"}, clinic.callLog())
	require.Len(t, recorder.Notices(), 1)
	assert.Equal(t, notice.LevelSuccess, recorder.Notices()[0].Level)
	assert.Equal(t, "Availability Changed", recorder.Notices()[0].Message)
}

func TestListAppointmentsNewestFirst(t *testing.T) {
	svc, clinic, _, _ := newTestService(t)
	clinic.respond("/api/admin/appointments", map[string]any{
		"success":      true,
		"appointments": []model.Appointment{{ID: "old"}, {ID: "mid"}, {ID: "new"}},
	})

	require.NoError(t, svc.ListAppointments(context.Background()))

	appointments := svc.Appointments()
	require.Len(t, appointments, 3)
	assert.Equal(t, "new", appointments[0].ID)
	assert.Equal(t, "old", appointments[2].ID)
}

func TestCancelAppointmentRefetchSequence(t *testing.T) {
	svc, clinic, recorder, _ := newTestService(t)
	clinic.respond("/api/admin/appointments", map[string]any{
		"success":      true,
		"appointments": []model.Appointment{{ID: "a1"}},
	})
	require.NoError(t, svc.ListAppointments(context.Background()))
	clinic.reset()

	clinic.respond("/api/admin/cancel-appointment", map[string]any{"success": true, "message": "Appointment Cancelled"})

	require.NoError(t, svc.CancelAppointment(context.Background(), "a1"))

	// Confirmation first, then list, then dashboard, in that order.
	assert.Equal(t, []string{
		"/api/admin/cancel-appointment",
		"/api/admin/appointments",
		"/api/admin/dashboard",
	}, clinic.callLog())
	require.Len(t, recorder.Notices(), 1)
	assert.Equal(t, "Appointment Cancelled", recorder.Notices()[0].Message)
}

func TestCancelTerminalAppointmentRefusedLocally(t *testing.T) {
	svc, clinic, recorder, _ := newTestService(t)
	clinic.respond("/api/admin/appointments", map[string]any{
		"success":      true,
		"appointments": []model.Appointment{{ID: "a1", Cancelled: true}},
	})
	require.NoError(t, svc.ListAppointments(context.Background()))
	clinic.reset()

	err := svc.CancelAppointment(context.Background(), "a1")
	require.Error(t, err)

	// No network call is made for a terminal record.
	assert.Empty(t, clinic.callLog())
	require.Len(t, recorder.Notices(), 1)
	assert.Equal(t, notice.LevelError, recorder.Notices()[0].Level)
	assert.Equal(t, "Appointment is already Cancelled", recorder.Notices()[0].Message)
}

func TestRefreshDashboard(t *testing.T) {
	svc, clinic, _, _ := newTestService(t)

	_, ok := svc.Dashboard()
	assert.False(t, ok)

	clinic.respond("/api/admin/dashboard", map[string]any{
		"success": true,
		"dashData": model.AdminDashboard{
			TotalEarnings:     4200,
			Doctors:           7,
			Appointments:      31,
			Patients:          19,
			AppointmentTrends: map[string]int{"Jul": 10, "Aug": 21},
		},
	})

	require.NoError(t, svc.RefreshDashboard(context.Background()))

	dash, ok := svc.Dashboard()
	require.True(t, ok)
	assert.Equal(t, 4200, dash.TotalEarnings)
	assert.Equal(t, 7, dash.Doctors)
	assert.Equal(t, 21, dash.AppointmentTrends["Aug"])
}

func TestAddDoctorWithoutImage(t *testing.T) {
	svc, clinic, recorder, _ := newTestService(t)

	form := model.NewDoctorForm()
	form.Name = "Dr. Jane"
	form.Email = "jane@clinic.test"
	form.Password = "supersecret"
	form.Fees = 150
	form.About = "General practice"
	form.Degree = "MBBS"

	err := svc.AddDoctor(context.Background(), &form)
	require.Error(t, err)

	assert.Empty(t, clinic.callLog())
	require.Len(t, recorder.Notices(), 1)
	assert.Equal(t, "Image Not Selected", recorder.Notices()[0].Message)
	// Form keeps its contents for another attempt.
	assert.Equal(t, "Dr. Jane", form.Name)
}

func TestAddDoctorSuccessResetsForm(t *testing.T) {
	svc, clinic, recorder, _ := newTestService(t)
	clinic.respond("/api/admin/add-doctor", map[string]any{"success": true, "message": "Doctor Added"})

	form := model.NewDoctorForm()
	form.Name = "Dr. Jane"
	form.Email = "jane@clinic.test"
	form.Password = "supersecret"
	form.Fees = 150
	form.About = "General practice"
	form.Degree = "MBBS"
	form.Image = []byte{1, 2, 3}
	form.ImageName = "jane.png"

	require.NoError(t, svc.AddDoctor(context.Background(), &form))

	require.Len(t, recorder.Notices(), 1)
	assert.Equal(t, notice.LevelSuccess, recorder.Notices()[0].Level)
	assert.Equal(t, "Doctor Added", recorder.Notices()[0].Message)

	// Form back at its defaults, image cleared.
	assert.Empty(t, form.Name)
	assert.Equal(t, model.DefaultExperience, form.Experience)
	assert.Equal(t, model.DefaultSpeciality, form.Speciality)
	assert.False(t, form.HasImage())
}

func TestAddDoctorInvalidFormNoNetworkCall(t *testing.T) {
	svc, clinic, recorder, _ := newTestService(t)

	form := model.NewDoctorForm()
	form.Name = "Dr. Jane"
	form.Email = "not-an-email"
	form.Password = "supersecret"
	form.Fees = 150
	form.About = "General practice"
	form.Degree = "MBBS"
	form.Image = []byte{1, 2, 3}
	form.ImageName = "jane.png"

	err := svc.AddDoctor(context.Background(), &form)
	require.Error(t, err)

	assert.Empty(t, clinic.callLog())
	require.Len(t, recorder.Notices(), 1)
	assert.Equal(t, notice.LevelError, recorder.Notices()[0].Level)
}
