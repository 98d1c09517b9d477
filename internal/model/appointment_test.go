package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatSlotDate(t *testing.T) {
	assert.Equal(t, "22 Aug 2024", FormatSlotDate("22_08_2024"))
	assert.Equal(t, "1 Jan 2025", FormatSlotDate("1_01_2025"))
	assert.Equal(t, "5 Dec 2024", FormatSlotDate("5_12_2024"))

	// Unparseable input is passed through untouched.
	assert.Equal(t, "22-08-2024", FormatSlotDate("22-08-2024"))
	assert.Equal(t, "22_13_2024", FormatSlotDate("22_13_2024"))
	assert.Equal(t, "22_xx_2024", FormatSlotDate("22_xx_2024"))
	assert.Equal(t, "", FormatSlotDate(""))
}

func TestAppointmentTerminal(t *testing.T) {
	assert.False(t, Appointment{}.Terminal())
	assert.True(t, Appointment{Cancelled: true}.Terminal())
	assert.True(t, Appointment{IsCompleted: true}.Terminal())
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Pending", Appointment{}.StatusLabel())
	assert.Equal(t, "Completed", Appointment{IsCompleted: true}.StatusLabel())
	assert.Equal(t, "Cancelled", Appointment{Cancelled: true}.StatusLabel())
	// Cancelled wins if a record ever carries both flags.
	assert.Equal(t, "Cancelled", Appointment{Cancelled: true, IsCompleted: true}.StatusLabel())
}

func TestNewestFirst(t *testing.T) {
	in := []Appointment{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	out := NewestFirst(in)

	assert.Equal(t, []Appointment{{ID: "c"}, {ID: "b"}, {ID: "a"}}, out)
	// Input order untouched.
	assert.Equal(t, "a", in[0].ID)

	assert.Empty(t, NewestFirst(nil))
}

func TestAgeFromDOB(t *testing.T) {
	now := time.Date(2024, 8, 22, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 30, AgeFromDOB("1994-08-01", now))
	// Birthday not reached yet this year.
	assert.Equal(t, 29, AgeFromDOB("1994-09-01", now))
	assert.Equal(t, 0, AgeFromDOB("", now))
	assert.Equal(t, 0, AgeFromDOB("not-a-date", now))
	assert.Equal(t, 0, AgeFromDOB("2030-01-01", now))
}
