package chart

import (
	"strings"
	"testing"
	"time"

	"github.com/mkale/emissia/internal/history"
	"github.com/mkale/emissia/internal/measure"
)

func TestSparkline(t *testing.T) {
	values := []float64{8, 12, 16, 19, 22, 26, 31, 35, 38}
	result := RenderSparkline(measure.CO, values, 20, 5, 40)
	if len(result) == 0 {
		t.Error("sparkline should not be empty")
	}
	t.Logf("Sparkline: %s", result)
}

func TestSparklineMinuteTicks(t *testing.T) {
	base := time.Date(2026, 8, 21, 14, 0, 50, 0, time.Local)
	var pts []history.Point
	for i := 0; i < 20; i++ {
		pts = append(pts, history.Point{
			Value: float64(410 + i%5),
			Time:  base.Add(time.Duration(i) * time.Second),
		})
	}

	result := RenderSparklinePoints(measure.CO2, pts, 20, 350, 600)
	if len(result) == 0 {
		t.Error("sparkline should not be empty")
	}
	if !strings.Contains(result, "│") {
		t.Error("expected minute tick mark in sparkline")
	}
	t.Logf("Sparkline with ticks: %s", result)
}

func TestTierColor(t *testing.T) {
	if TierColor(measure.TierOK) == TierColor(measure.TierDanger) {
		t.Error("ok and danger must render with distinct colors")
	}
	if ValueColor(measure.CO, 30) != TierColor(measure.TierDanger) {
		t.Error("CO at 30 ppm should use the danger color")
	}
}

func TestRenderBars(t *testing.T) {
	result := RenderBars(measure.CO2, []float64{412, 436, 405, 447, 462, 428, 419}, 3)
	if len(result) == 0 {
		t.Error("bar chart should not be empty")
	}
	t.Logf("Bars: %s", result)
}
