package model

import (
	"strconv"
	"strings"
	"time"
)

// PatientInfo is the patient snapshot embedded in an appointment record.
type PatientInfo struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	DOB   string `json:"dob,omitempty"`
}

// DoctorInfo is the doctor snapshot embedded in an appointment record.
type DoctorInfo struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Appointment mirrors the booking record served by the clinic API.
// Cancelled and IsCompleted are mutually exclusive; once either is set
// the record is terminal and no further mutation may be issued for it.
type Appointment struct {
	ID          string      `json:"_id"`
	UserData    PatientInfo `json:"userData"`
	DocData     DoctorInfo  `json:"docData"`
	SlotDate    string      `json:"slotDate"`
	SlotTime    string      `json:"slotTime"`
	Amount      int         `json:"amount"`
	Payment     bool        `json:"payment"`
	Cancelled   bool        `json:"cancelled"`
	IsCompleted bool        `json:"isCompleted"`
}

// Terminal reports whether the record may no longer be mutated.
func (a Appointment) Terminal() bool {
	return a.Cancelled || a.IsCompleted
}

// StatusLabel returns the badge text shown next to a booking.
func (a Appointment) StatusLabel() string {
	switch {
	case a.Cancelled:
		return "Cancelled"
	case a.IsCompleted:
		return "Completed"
	default:
		return "Pending"
	}
}

// NewestFirst returns a reversed copy of the server's oldest-first
// appointment order. The input is left untouched.
func NewestFirst(appointments []Appointment) []Appointment {
	reversed := make([]Appointment, len(appointments))
	for i, a := range appointments {
		reversed[len(appointments)-1-i] = a
	}
	return reversed
}

var slotMonths = []string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FormatSlotDate converts the wire encoding "22_08_2024" into the
// display form "22 Aug 2024". Unparseable input is returned unchanged.
func FormatSlotDate(slotDate string) string {
	parts := strings.Split(slotDate, "_")
	if len(parts) != 3 {
		return slotDate
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return slotDate
	}
	return parts[0] + " " + slotMonths[month] + " " + parts[2]
}

// AgeFromDOB computes a patient's age in whole years from an ISO date
// of birth. It returns 0 when the date is absent or malformed.
func AgeFromDOB(dob string, now time.Time) int {
	if dob == "" {
		return 0
	}
	born, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return 0
	}
	age := now.Year() - born.Year()
	if now.YearDay() < born.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
