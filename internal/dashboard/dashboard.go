// Package dashboard implements the factory emissions dashboard TUI
// using BubbleTea: live simulated CO/CO2 readings with sparklines,
// severity badges, the weekly chart, and the alerts and notifications
// panels. The factory profile is fetched once per mount.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/mkale/emissia/internal/chart"
	"github.com/mkale/emissia/internal/feed"
	"github.com/mkale/emissia/internal/history"
	"github.com/mkale/emissia/internal/measure"
	"github.com/mkale/emissia/internal/profile"
	"github.com/mkale/emissia/internal/simulate"
)

const (
	defaultTickPeriod = 5 * time.Second
	historySize       = 720 // one hour at the 5s tick
)

// ── Messages ─────────────────────────────────────────────────────────

type tickMsg time.Time

// profileMsg carries the resolved profile for one fetch generation.
// Results from a stale generation are discarded on receipt.
type profileMsg struct {
	gen     int
	profile profile.Profile
}

// ── Model ────────────────────────────────────────────────────────────

// Model is the BubbleTea model for the dashboard screen.
type Model struct {
	walkers    []*simulate.Walker
	history    *history.Store
	store      profile.Store
	userID     string
	log        zerolog.Logger
	tickPeriod time.Duration

	profile        profile.Profile
	profilePending bool
	spin           spinner.Model

	alerts        []feed.Alert
	notifications []feed.Notification

	gen       int
	active    bool
	paused    bool
	width     int
	height    int
	scroll    int
	lastTick  time.Time
	startTime time.Time
}

// New creates the initial model for a dashboard mount. The store may be
// nil, in which case the placeholder profile is shown.
func New(store profile.Store, userID string, log zerolog.Logger) Model {
	now := time.Now()
	m := Model{
		history:        history.NewStore(historySize),
		store:          store,
		userID:         userID,
		log:            log,
		tickPeriod:     defaultTickPeriod,
		profile:        profile.Placeholder(),
		profilePending: true,
		spin:           spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		alerts:         feed.Alerts(now),
		notifications:  feed.Notifications(now),
		gen:            1,
		active:         true,
		startTime:      now,
	}
	for _, kind := range measure.Kinds() {
		w := simulate.NewWalker(kind)
		m.walkers = append(m.walkers, w)
		r := w.Reading(now)
		m.history.Record(r.Key(), r.Value, now)
	}
	return m
}

// WithTickPeriod overrides the simulator period. Used by tests.
func (m Model) WithTickPeriod(d time.Duration) Model {
	m.tickPeriod = d
	return m
}

// Active reports whether the screen still owns its timer.
func (m Model) Active() bool {
	return m.active
}

// Profile returns the profile currently surfaced to the display.
func (m Model) Profile() profile.Profile {
	return m.profile
}

// Reading returns the current reading for a measurement kind.
func (m Model) Reading(kind measure.Kind) measure.Reading {
	for _, w := range m.walkers {
		if w.Kind() == kind {
			return w.Reading(m.lastTick)
		}
	}
	return measure.Reading{Kind: kind}
}

// ── Commands ─────────────────────────────────────────────────────────

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tickPeriod, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchCmd issues the single profile lookup for this mount, tagged with
// the mount generation so a late result can be recognized as stale.
func (m Model) fetchCmd() tea.Cmd {
	store, userID, log, gen := m.store, m.userID, m.log, m.gen
	return func() tea.Msg {
		p := profile.Fetch(context.Background(), store, userID, log)
		return profileMsg{gen: gen, profile: p}
	}
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.tickCmd(), m.spin.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.active = false
			if c, ok := m.store.(interface{ Close() error }); ok && c != nil {
				c.Close()
			}
			return m, tea.Quit
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		case "home":
			m.scroll = 0
		case " ", "p":
			m.paused = !m.paused
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		// A tick that arrives after deactivation is a stray; it must
		// not change values and must not reschedule.
		if !m.active {
			return m, nil
		}
		if m.paused {
			return m, m.tickCmd()
		}
		t := time.Time(msg)
		m.lastTick = t
		for _, w := range m.walkers {
			w.Step()
			r := w.Reading(t)
			m.history.Record(r.Key(), r.Value, t)
		}
		return m, m.tickCmd()

	case profileMsg:
		// Only the active mount's own fetch may update the display.
		if !m.active || msg.gen != m.gen {
			m.log.Debug().Int("gen", msg.gen).Msg("discarding stale profile result")
			return m, nil
		}
		m.profile = msg.profile
		m.profilePending = false

	case spinner.TickMsg:
		if m.profilePending {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorHeading  = lipgloss.Color("147")
	colorSubtle   = lipgloss.Color("243")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorUnread   = lipgloss.Color("51")
	colorStar     = lipgloss.Color("220")
	colorPaused   = lipgloss.Color("196")
)

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string

	sections = append(sections, m.renderTitleBar(contentWidth))
	sections = append(sections, m.renderHeader(contentWidth))
	sections = append(sections, m.renderMeasurementPanels(contentWidth)...)
	sections = append(sections, m.renderWeeklyPanel(contentWidth))
	sections = append(sections, m.renderAlertsPanel(contentWidth))
	sections = append(sections, m.renderNotificationsPanel(contentWidth))
	sections = append(sections, m.renderFooter(contentWidth))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	lines := strings.Split(content, "\n")
	visibleLines := m.height
	if visibleLines < 5 {
		visibleLines = 5
	}
	maxScroll := len(lines) - visibleLines
	if maxScroll < 0 {
		maxScroll = 0
	}
	scroll := m.scroll
	if scroll > maxScroll {
		scroll = maxScroll
	}

	start := scroll
	end := start + visibleLines
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}

func (m Model) renderTitleBar(width int) string {
	title := m.profile.DisplayName()
	if m.profilePending {
		title = "Factory Dashboard " + m.spin.View()
	}
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render(strings.ToUpper(title))

	var statusParts []string

	uptime := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(fmt.Sprintf("up %s", fmtDuration(time.Since(m.startTime))))
	statusParts = append(statusParts, uptime)

	if !m.lastTick.IsZero() {
		ts := lipgloss.NewStyle().
			Foreground(colorDim).
			Render(m.lastTick.Format("15:04:05"))
		statusParts = append(statusParts, ts)
	}

	if m.paused {
		p := lipgloss.NewStyle().
			Foreground(colorPaused).
			Bold(true).
			Render("PAUSED")
		statusParts = append(statusParts, p)
	}

	sep := lipgloss.NewStyle().Foreground(colorDim).Render(" │ ")
	right := strings.Join(statusParts, sep)

	gap := width - lipgloss.Width(logo) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + filler + right)
}

func (m Model) renderHeader(width int) string {
	location := lipgloss.NewStyle().
		Foreground(colorSubtle).
		Render(m.profile.DisplayLocation())

	filled := m.profile.Rating
	if filled < 0 {
		filled = 0
	}
	if filled > 5 {
		filled = 5
	}
	stars := lipgloss.NewStyle().Foreground(colorStar).Render(strings.Repeat("★", filled)) +
		lipgloss.NewStyle().Foreground(colorDim).Render(strings.Repeat("☆", 5-filled))

	gap := width - lipgloss.Width(location) - lipgloss.Width(stars) - 4
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		Width(width).
		Render(location + strings.Repeat(" ", gap) + stars)
}

func (m Model) renderMeasurementPanels(totalWidth int) []string {
	innerWidth := totalWidth - 4
	if innerWidth < 30 {
		innerWidth = 30
	}

	chartWidth := innerWidth - 44
	if chartWidth < 15 {
		chartWidth = 15
	}
	if chartWidth > 140 {
		chartWidth = 140
	}

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	valS := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	frameL := lipgloss.NewStyle().Foreground(colorBorder).Render("▕")
	frameR := lipgloss.NewStyle().Foreground(colorBorder).Render("▏")

	var panels []string

	for _, w := range m.walkers {
		kind := w.Kind()
		spec := measure.SpecFor(kind)
		r := w.Reading(m.lastTick)

		heading := lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHeading).
			Render(kind.String()+" level") + "  " +
			m.renderTierBadge(r.Tier())

		var rows []string
		rows = append(rows, heading)

		hist := m.history.Get(kind.String())

		value := lipgloss.NewStyle().
			Width(12).
			Align(lipgloss.Right).
			Render(chart.RenderValue(r))

		rangeMin := spec.Min
		rangeMax := spec.Max
		if hist != nil {
			rangeMin = math.Max(spec.Min, hist.Min-spec.Step)
			rangeMax = math.Min(spec.Max, hist.Peak+spec.Step)
			if rangeMax <= rangeMin {
				rangeMax = rangeMin + 1
			}
		}

		var pts []history.Point
		if hist != nil {
			pts = hist.LastNPoints(chartWidth)
		}
		spark := chart.RenderSparklinePoints(kind, pts, chartWidth, rangeMin, rangeMax)
		framedSpark := frameL + spark + frameR

		stats := ""
		if hist != nil {
			stats = dimS.Render(" avg") + valS.Render(fmt.Sprintf("%6.1f", hist.Avg())) +
				dimS.Render(" lo") + valS.Render(fmt.Sprintf("%6.1f", hist.Min)) +
				dimS.Render(" pk") + valS.Render(fmt.Sprintf("%6.1f", hist.Peak))
		}
		rows = append(rows, value+" "+framedSpark+stats)

		scalePad := strings.Repeat(" ", 13)
		scale := chart.RenderThresholdScale(kind, r.Value, chartWidth)
		thresh := dimS.Render(" W") + lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render(fmt.Sprintf("%.0f", spec.Warn)) +
			dimS.Render(" D") + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("%.0f", spec.Danger))
		rows = append(rows, scalePad+frameL+scale+frameR+thresh)

		if pts != nil {
			timeline := chart.RenderTimeline(pts, chartWidth)
			if strings.TrimSpace(timeline) != "" {
				rows = append(rows, scalePad+" "+timeline)
			}
		}

		panel := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(totalWidth).
			Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

		panels = append(panels, panel)
	}

	return panels
}

func (m Model) renderTierBadge(tier measure.Tier) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("232")).
		Background(chart.TierColor(tier)).
		Padding(0, 1).
		Render(strings.ToUpper(tier.String()))
}

func (m Model) renderWeeklyPanel(totalWidth int) string {
	heading := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorHeading).
		Render("This week")

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	labelS := lipgloss.NewStyle().Foreground(colorLabel).Width(22)

	colWidth := 3
	days := feed.WeekDays(time.Now())

	var axis strings.Builder
	for i, d := range days {
		axis.WriteString(fmt.Sprintf("%-*s", colWidth, d))
		if i < len(days)-1 {
			axis.WriteString(" ")
		}
	}

	co := feed.WeeklyCO()
	co2 := feed.WeeklyCO2()

	rows := []string{
		heading,
		labelS.Render(co.Label) + " " + chart.RenderBars(measure.CO, co.Points, colWidth),
		labelS.Render(co2.Label) + " " + chart.RenderBars(measure.CO2, co2.Points, colWidth),
		strings.Repeat(" ", 23) + dimS.Render(axis.String()),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(totalWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderAlertsPanel(totalWidth int) string {
	heading := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorHeading).
		Render("Alerts")

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	rows := []string{heading}

	for _, a := range m.alerts {
		var dot string
		switch a.Kind {
		case "co":
			dot = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Render("●")
		case "co2":
			dot = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render("●")
		default:
			dot = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Render("●")
		}
		msg := lipgloss.NewStyle().Foreground(colorLabel).Render(a.Message)
		ts := dimS.Render(fmtAge(time.Since(a.Timestamp)))
		rows = append(rows, dot+" "+msg+"  "+ts)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(totalWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderNotificationsPanel(totalWidth int) string {
	heading := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorHeading).
		Render("Notifications")

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	rows := []string{heading}

	for _, n := range m.notifications {
		var mark, msg string
		if n.Read {
			mark = dimS.Render("○")
			msg = dimS.Render(n.Message)
		} else {
			mark = lipgloss.NewStyle().Foreground(colorUnread).Render("●")
			msg = lipgloss.NewStyle().Foreground(colorLabel).Bold(true).Render(n.Message)
		}
		ts := dimS.Render(fmtAge(time.Since(n.Timestamp)))
		rows = append(rows, mark+" "+msg+"  "+ts)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(totalWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderFooter(width int) string {
	okS := lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Render("██")
	warnS := lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render("██")
	critS := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("██")

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	legend := okS + dimS.Render(" ok ") +
		warnS + dimS.Render(" warning ") +
		critS + dimS.Render(" danger")

	keys := dimS.Render("q") + lipgloss.NewStyle().Foreground(colorLabel).Render(":quit") +
		dimS.Render("  j/k") + lipgloss.NewStyle().Foreground(colorLabel).Render(":scroll") +
		dimS.Render("  p") + lipgloss.NewStyle().Foreground(colorLabel).Render(":pause")

	gap := width - lipgloss.Width(legend) - lipgloss.Width(keys) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(legend + filler + keys)
}

func fmtDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func fmtAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
