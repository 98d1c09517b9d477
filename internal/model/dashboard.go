package model

import "sort"

// AdminDashboard is the admin aggregate snapshot. It is replaced
// wholesale on every fetch; the portal never merges or diffs it.
type AdminDashboard struct {
	TotalEarnings      int            `json:"totalEarnings"`
	Doctors            int            `json:"doctors"`
	Appointments       int            `json:"appointments"`
	Patients           int            `json:"patients"`
	AppointmentTrends  map[string]int `json:"appointmentTrends"`
	SpecialtyData      map[string]int `json:"specialtyData"`
	LatestAppointments []Appointment  `json:"latestAppointments"`
}

// DoctorDashboard is the doctor-scoped aggregate snapshot.
type DoctorDashboard struct {
	Earnings           int           `json:"earnings"`
	Appointments       int           `json:"appointments"`
	Patients           int           `json:"patients"`
	LatestAppointments []Appointment `json:"latestAppointments"`
}

// ChartSeries is the plain data handed to chart widgets: parallel
// label/value slices. An empty map yields empty slices, never nil maps
// blowing up downstream.
type ChartSeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

var monthOrder = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "May": 5, "Jun": 6,
	"Jul": 7, "Aug": 8, "Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

// NewChartSeries flattens a label→count map into a deterministic
// series. Month labels sort calendar-wise, anything else lexically.
func NewChartSeries(data map[string]int) ChartSeries {
	series := ChartSeries{
		Labels: make([]string, 0, len(data)),
		Values: make([]int, 0, len(data)),
	}
	for label := range data {
		series.Labels = append(series.Labels, label)
	}
	sort.Slice(series.Labels, func(i, j int) bool {
		mi, iok := monthOrder[series.Labels[i]]
		mj, jok := monthOrder[series.Labels[j]]
		if iok && jok {
			return mi < mj
		}
		return series.Labels[i] < series.Labels[j]
	})
	for _, label := range series.Labels {
		series.Values = append(series.Values, data[label])
	}
	return series
}
