package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/aidmqan/mqan-console/internal/models"
)

// settingsScreen shows the current settings and edits them with a huh form.
type settingsScreen struct {
	PageState
	env  Env
	form *huh.Form
	// form buffers; numbers are edited as text and parsed on submit
	draft   models.Settings
	numbers map[string]*string
}

func newSettingsScreen(env Env, layout Layout) screen {
	return &settingsScreen{PageState: NewPageState(layout), env: env}
}

func (m *settingsScreen) Init() tea.Cmd { return nil }

func (m *settingsScreen) Capturing() bool { return m.form != nil }

func (m *settingsScreen) current() models.Settings {
	if m.env.Settings == nil {
		return models.DefaultSettings()
	}
	return *m.env.Settings
}

func intField(title string, v *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Value(v).
		Validate(func(s string) error {
			if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
				return fmt.Errorf("%s must be a whole number", strings.ToLower(title))
			}
			return nil
		})
}

func (m *settingsScreen) openForm() tea.Cmd {
	m.draft = m.current()
	m.numbers = map[string]*string{}
	num := func(name string, v int) *string {
		s := strconv.Itoa(v)
		m.numbers[name] = &s
		return &s
	}

	policies := huh.NewOptions(models.PasswordPolicies...)
	frequencies := huh.NewOptions(models.AuditFrequencies...)

	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"))

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("System Name").Value(&m.draft.SystemName),
			huh.NewInput().Title("Organization").Value(&m.draft.Organization),
			huh.NewConfirm().Title("Auto Refresh").Value(&m.draft.AutoRefresh),
			intField("Session Timeout (minutes)", num("session", m.draft.SessionTimeout)),
			huh.NewSelect[string]().Title("Password Policy").Options(policies...).Value(&m.draft.PasswordPolicy),
		).Title("General & Security"),
		huh.NewGroup(
			intField("Quality Threshold (%)", num("threshold", m.draft.QualityThreshold)),
			intField("Max Response Time (seconds)", num("response", m.draft.MaxResponseTime)),
			huh.NewSelect[string]().Title("Audit Frequency").Options(frequencies...).Value(&m.draft.AuditFrequency),
			intField("Data Retention (years)", num("retention", m.draft.DataRetention)),
			intField("Cache Duration (minutes)", num("cache", m.draft.CacheDuration)),
		).Title("Quality & Compliance"),
	).
		WithTheme(NewAppTheme()).
		WithKeyMap(km).
		WithShowHelp(false).
		WithWidth(m.Layout.InnerWidth - 4)

	return m.form.Init()
}

// applyNumbers copies the parsed numeric buffers into the draft.
func (m *settingsScreen) applyNumbers() {
	set := func(name string, dst *int) {
		if n, err := strconv.Atoi(strings.TrimSpace(*m.numbers[name])); err == nil {
			*dst = n
		}
	}
	set("session", &m.draft.SessionTimeout)
	set("threshold", &m.draft.QualityThreshold)
	set("response", &m.draft.MaxResponseTime)
	set("retention", &m.draft.DataRetention)
	set("cache", &m.draft.CacheDuration)
}

func (m *settingsScreen) save() {
	m.applyNumbers()
	s := m.draft
	if err := s.Validate(); err != nil {
		m.SetError(err)
		return
	}
	if m.env.Store != nil {
		if err := m.env.Store.SaveSettings(s); err != nil {
			m.SetError(err)
			return
		}
	}
	if m.env.Settings != nil {
		*m.env.Settings = s
	}
	if m.env.Logger != nil {
		m.env.Logger.Info("settings saved", "threshold", s.QualityThreshold, "policy", s.PasswordPolicy)
	}
	m.SetStatus("Settings saved", StatusTTL)
}

func (m *settingsScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	m.ClearExpiredStatus()

	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.UpdateLayout(msg.Width, msg.Height)
		if m.form != nil {
			m.form = m.form.WithWidth(m.Layout.InnerWidth - 4)
		}
		return m, nil
	}

	if m.form == nil {
		if k, ok := msg.(tea.KeyMsg); ok && (k.String() == "e" || k.String() == "enter") {
			return m, m.openForm()
		}
		return m, nil
	}

	f, cmd := m.form.Update(msg)
	if f, ok := f.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		m.save()
	case huh.StateAborted:
		m.form = nil
		m.SetStatus("Changes discarded", StatusTTL)
	}
	return m, cmd
}

func (m *settingsScreen) View() string {
	b := NewPageView(m.Layout).
		Title("System Settings").
		Subtitle("Configure network, security and quality parameters").
		Divider()

	if m.form != nil {
		return b.Spacing(1).
			CustomContent(m.form.View()).
			Help("Enter: next | Shift+Tab: previous | Esc: discard").
			Build()
	}

	s := m.current()
	rows := [][2]string{
		{"System Name", s.SystemName},
		{"Organization", s.Organization},
		{"Auto Refresh", strconv.FormatBool(s.AutoRefresh)},
		{"Session Timeout", fmt.Sprintf("%d min", s.SessionTimeout)},
		{"Password Policy", s.PasswordPolicy},
		{"Quality Threshold", fmt.Sprintf("%d%%", s.QualityThreshold)},
		{"Max Response Time", fmt.Sprintf("%ds", s.MaxResponseTime)},
		{"Audit Frequency", s.AuditFrequency},
		{"Data Retention", fmt.Sprintf("%d years", s.DataRetention)},
		{"Cache Duration", fmt.Sprintf("%d min", s.CacheDuration)},
	}
	var body strings.Builder
	for _, r := range rows {
		body.WriteString(MetricLabelStyle.Render(fmt.Sprintf("%-20s", r[0])))
		body.WriteString(MetricValueStyle.Render(r[1]))
		body.WriteString("\n")
	}

	return b.CustomContent(body.String()).
		Status(m.StatusMsg).
		Error(m.Err).
		Help("e: edit | q: back").
		Build()
}
