package feed

import (
	"testing"
	"time"
)

func TestAlertsNewestFirst(t *testing.T) {
	now := time.Now()
	alerts := Alerts(now)

	if len(alerts) == 0 {
		t.Fatal("expected alerts")
	}
	for i := 1; i < len(alerts); i++ {
		if alerts[i].Timestamp.After(alerts[i-1].Timestamp) {
			t.Errorf("alerts out of order at %d", i)
		}
	}
	for _, a := range alerts {
		if a.Kind == "" || a.Message == "" {
			t.Errorf("incomplete alert: %+v", a)
		}
	}
}

func TestNotifications(t *testing.T) {
	now := time.Now()
	ns := Notifications(now)

	if len(ns) == 0 {
		t.Fatal("expected notifications")
	}
	unread := 0
	for _, n := range ns {
		if n.Message == "" {
			t.Errorf("empty notification message")
		}
		if !n.Read {
			unread++
		}
	}
	if unread == 0 {
		t.Error("expected at least one unread notification")
	}
}

func TestWeeklySeriesShape(t *testing.T) {
	co := WeeklyCO()
	co2 := WeeklyCO2()
	days := WeekDays(time.Now())

	if len(co.Points) != 7 || len(co2.Points) != 7 || len(days) != 7 {
		t.Errorf("weekly series must cover 7 days: %d/%d/%d", len(co.Points), len(co2.Points), len(days))
	}
}
