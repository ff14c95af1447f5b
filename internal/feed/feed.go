// Package feed supplies the dashboard's fixed side-panel content: the
// alerts list, the notifications list and the weekly chart series.
// These are static datasets standing in for feeds that are not part of
// this screen; only the live CO/CO2 readings are simulated.
package feed

import "time"

// Alert is one entry in the alerts panel.
type Alert struct {
	Kind      string // "co", "co2" or "system"
	Message   string
	Timestamp time.Time
}

// Notification is one entry in the notifications panel.
type Notification struct {
	Message   string
	Read      bool
	Timestamp time.Time
}

// Series is a chart-ready labelled time series of daily averages.
type Series struct {
	Label  string
	Points []float64
}

// Alerts returns the fixed alerts list, timestamped relative to now.
func Alerts(now time.Time) []Alert {
	return []Alert{
		{Kind: "co", Message: "CO level exceeded warning threshold", Timestamp: now.Add(-25 * time.Minute)},
		{Kind: "co2", Message: "CO2 level approaching warning threshold", Timestamp: now.Add(-2 * time.Hour)},
		{Kind: "system", Message: "Sensor array calibration completed", Timestamp: now.Add(-6 * time.Hour)},
		{Kind: "co", Message: "CO level returned to normal range", Timestamp: now.Add(-26 * time.Hour)},
	}
}

// Notifications returns the fixed notifications list, timestamped
// relative to now.
func Notifications(now time.Time) []Notification {
	return []Notification{
		{Message: "Weekly emissions report is ready", Read: false, Timestamp: now.Add(-40 * time.Minute)},
		{Message: "New compliance guideline published", Read: false, Timestamp: now.Add(-3 * time.Hour)},
		{Message: "Scheduled maintenance this Friday", Read: true, Timestamp: now.Add(-22 * time.Hour)},
		{Message: "Filter replacement confirmed", Read: true, Timestamp: now.Add(-49 * time.Hour)},
	}
}

// WeeklyCO returns daily average CO concentrations for the past week.
func WeeklyCO() Series {
	return Series{
		Label:  "CO (ppm, daily avg)",
		Points: []float64{17.2, 18.9, 16.4, 19.8, 21.3, 18.1, 17.6},
	}
}

// WeeklyCO2 returns daily average CO2 concentrations for the past week.
func WeeklyCO2() Series {
	return Series{
		Label:  "CO2 (ppm, daily avg)",
		Points: []float64{412, 436, 405, 447, 462, 428, 419},
	}
}

// WeekDays returns the axis labels matching the weekly series.
func WeekDays(now time.Time) []string {
	labels := make([]string, 7)
	for i := 0; i < 7; i++ {
		labels[i] = now.AddDate(0, 0, i-6).Format("Mon")
	}
	return labels
}
