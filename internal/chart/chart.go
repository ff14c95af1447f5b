// Package chart renders sparklines and bar charts for emission
// readings, color-coded by severity tier, with minute tick marks and
// timeline labels.
package chart

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkale/emissia/internal/history"
	"github.com/mkale/emissia/internal/measure"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// TierColor returns the display color for a severity tier.
func TierColor(tier measure.Tier) lipgloss.Color {
	switch tier {
	case measure.TierDanger:
		return lipgloss.Color("196") // red
	case measure.TierWarning:
		return lipgloss.Color("220") // yellow
	default:
		return lipgloss.Color("78") // soft green
	}
}

// ValueColor returns the display color for a measurement value.
func ValueColor(kind measure.Kind, value float64) lipgloss.Color {
	return TierColor(measure.Classify(kind, value))
}

// RenderSparkline renders a sparkline over bare values (no timestamp
// ticks).
func RenderSparkline(kind measure.Kind, values []float64, width int, rangeMin, rangeMax float64) string {
	if width <= 0 {
		return ""
	}
	pts := make([]history.Point, len(values))
	for i, v := range values {
		pts[i] = history.Point{Value: v}
	}
	return RenderSparklinePoints(kind, pts, width, rangeMin, rangeMax)
}

// RenderSparklinePoints renders a sparkline with a subtle pipe drawn at
// each minute boundary. Block color follows the severity tier of each
// sample.
func RenderSparklinePoints(kind measure.Kind, points []history.Point, width int, rangeMin, rangeMax float64) string {
	if width <= 0 {
		return ""
	}

	if len(points) == 0 {
		dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
		return dim.Render(strings.Repeat("╌", width))
	}

	if len(points) > width {
		points = points[len(points)-width:]
	}

	padLen := width - len(points)
	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}

	var sb strings.Builder

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	for i := 0; i < padLen; i++ {
		sb.WriteString(dim.Render("╌"))
	}

	tickStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("239"))

	for i, p := range points {
		norm := (p.Value - rangeMin) / span
		norm = math.Max(0, math.Min(1, norm))

		idx := int(norm * 7)
		if idx > 7 {
			idx = 7
		}

		isMinuteTick := false
		if !p.Time.IsZero() {
			if p.Time.Second() == 0 {
				isMinuteTick = true
			} else if i > 0 && !points[i-1].Time.IsZero() {
				if p.Time.Minute() != points[i-1].Time.Minute() {
					isMinuteTick = true
				}
			}
		}

		if isMinuteTick {
			sb.WriteString(tickStyle.Render("│"))
		} else {
			ch := string(sparkBlocks[idx])
			tier := measure.Classify(kind, p.Value)
			style := lipgloss.NewStyle().Foreground(TierColor(tier))
			if tier == measure.TierDanger {
				style = style.Bold(true)
			}
			sb.WriteString(style.Render(ch))
		}
	}

	return sb.String()
}

// RenderTimeline renders the time labels under the sparkline, showing
// HH:MM at each minute tick position.
func RenderTimeline(points []history.Point, width int) string {
	if len(points) == 0 || width <= 0 {
		return ""
	}

	if len(points) > width {
		points = points[len(points)-width:]
	}

	padLen := width - len(points)

	line := make([]rune, width)
	for i := range line {
		line[i] = ' '
	}

	tickStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("239"))

	type tick struct {
		pos   int
		label string
	}
	var ticks []tick

	for i, p := range points {
		if p.Time.IsZero() {
			continue
		}
		isMinuteTick := false
		if p.Time.Second() == 0 {
			isMinuteTick = true
		} else if i > 0 && !points[i-1].Time.IsZero() {
			if p.Time.Minute() != points[i-1].Time.Minute() {
				isMinuteTick = true
			}
		}
		if isMinuteTick {
			pos := padLen + i
			label := p.Time.Format("15:04")
			ticks = append(ticks, tick{pos: pos, label: label})
		}
	}

	lastEnd := -1
	for _, t := range ticks {
		start := t.pos - 2
		if start < 0 {
			start = 0
		}
		end := start + len(t.label)
		if end > width {
			continue
		}
		if start <= lastEnd+1 {
			continue
		}
		for j, ch := range t.label {
			line[start+j] = ch
		}
		lastEnd = end
	}

	result := string(line)
	return tickStyle.Render(result)
}

// RenderThresholdScale renders a scale bar showing the current value's
// position against the kind's warn and danger thresholds.
func RenderThresholdScale(kind measure.Kind, current float64, width int) string {
	if width <= 0 {
		return ""
	}

	s := measure.SpecFor(kind)
	span := s.Max - s.Min
	if span <= 0 {
		span = 1
	}

	warnPos := int(float64(width-1) * (s.Warn - s.Min) / span)
	dangerPos := int(float64(width-1) * (s.Danger - s.Min) / span)

	curPos := int(float64(width-1) * (current - s.Min) / span)
	if curPos < 0 {
		curPos = 0
	}
	if curPos >= width {
		curPos = width - 1
	}

	var sb strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == curPos:
			style := lipgloss.NewStyle().Foreground(ValueColor(kind, current)).Bold(true)
			sb.WriteString(style.Render("◆"))
		case i == dangerPos:
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("▪"))
		case i == warnPos:
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render("▪"))
		default:
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("236")).Render("·"))
		}
	}

	return sb.String()
}

// RenderValue renders a reading's formatted value with severity color.
func RenderValue(r measure.Reading) string {
	tier := r.Tier()
	style := lipgloss.NewStyle().Foreground(TierColor(tier))
	if tier == measure.TierDanger {
		style = style.Bold(true)
	}
	return style.Render(r.FormatUnit())
}

// RenderBars renders a labelled bar chart row for a weekly series,
// one block column per point, colored by the kind's severity tiers.
func RenderBars(kind measure.Kind, values []float64, colWidth int) string {
	if len(values) == 0 {
		return ""
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	if span <= 0 {
		span = 1
	}

	var sb strings.Builder
	for i, v := range values {
		norm := (v - min) / span
		idx := int(norm * 7)
		if idx > 7 {
			idx = 7
		}
		style := lipgloss.NewStyle().Foreground(ValueColor(kind, v))
		col := strings.Repeat(string(sparkBlocks[idx]), colWidth)
		sb.WriteString(style.Render(col))
		if i < len(values)-1 {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}
