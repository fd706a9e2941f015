package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cinedeck/internal/state"
)

// Form field indexes.
const (
	loginEmail = iota
	loginPassword
)

const (
	registerName = iota
	registerEmail
	registerPassword
	registerConfirm
)

type fieldSpec struct {
	label       string
	placeholder string
	secret      bool
}

var (
	loginFields = []fieldSpec{
		{"Email", "you@email.com", false},
		{"Password", "•••••••", true},
	}
	registerFields = []fieldSpec{
		{"Full name", "Emily Stone", false},
		{"Email", "you@email.com", false},
		{"Password", "Create a password", true},
		{"Confirm password", "Repeat your password", true},
	}
)

func newInputs(fields []fieldSpec) []textinput.Model {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.CharLimit = 128
		ti.Width = 36
		ti.Prompt = "› "
		ti.Cursor.SetMode(cursor.CursorStatic)
		if f.secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		inputs[i] = ti
	}
	return inputs
}

func (m *Model) initForms() {
	m.loginInputs = newInputs(loginFields)
	m.registerInputs = newInputs(registerFields)
	m.focusIdx = 0
	m.loginInputs[0].Focus()
}

// resetForms clears both forms. Credentials never outlive a submission.
func (m *Model) resetForms() {
	m.initForms()
	m.formErr = ""
	m.busy = false
	m.applyThemeToWidgets()
}

func styleInput(ti *textinput.Model, theme Theme) {
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Text))
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Faint))
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))
}

// inputs returns the form for the current auth screen.
func (m *Model) inputs() []textinput.Model {
	if m.activeScreen() == ScreenRegister {
		return m.registerInputs
	}
	return m.loginInputs
}

func (m *Model) focusField(idx int) {
	inputs := m.inputs()
	if len(inputs) == 0 {
		return
	}
	idx = (idx + len(inputs)) % len(inputs)
	for i := range inputs {
		inputs[i].Blur()
	}
	inputs[idx].Focus()
	m.focusIdx = idx
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.SwitchForm):
		if m.activeScreen() == ScreenRegister {
			m.screen = ScreenLogin
		} else {
			m.screen = ScreenRegister
		}
		m.formErr = ""
		m.focusField(0)
		return m, nil
	case key.Matches(msg, m.keys.Tab), msg.Type == tea.KeyDown:
		m.focusField(m.focusIdx + 1)
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab), msg.Type == tea.KeyUp:
		m.focusField(m.focusIdx - 1)
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		return m.submitAuth()
	}
	return m.updateFocusedInput(msg)
}

// submitAuth validates the active form and dispatches login or register.
func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}
	if m.activeScreen() == ScreenRegister {
		name := strings.TrimSpace(m.registerInputs[registerName].Value())
		email := strings.TrimSpace(m.registerInputs[registerEmail].Value())
		password := m.registerInputs[registerPassword].Value()
		confirm := m.registerInputs[registerConfirm].Value()
		if err := state.ValidateRegistration(name, email, password, confirm); err != nil {
			m.formErr = err.Error()
			return m, nil
		}
		m.formErr = ""
		m.busy = true
		return m, registerCmd(m.ctx, m.store, name, email, password)
	}

	email := strings.TrimSpace(m.loginInputs[loginEmail].Value())
	password := m.loginInputs[loginPassword].Value()
	if err := state.ValidateLogin(email, password); err != nil {
		m.formErr = err.Error()
		return m, nil
	}
	m.formErr = ""
	m.busy = true
	return m, loginCmd(m.ctx, m.store, state.Credentials{Email: email, Password: password})
}

// updateFocusedInput forwards a message to the focused form field.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	screen := m.activeScreen()
	if screen != ScreenLogin && screen != ScreenRegister {
		return m, nil
	}
	inputs := m.inputs()
	if m.focusIdx < 0 || m.focusIdx >= len(inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	inputs[m.focusIdx], cmd = inputs[m.focusIdx].Update(msg)
	return m, cmd
}

// renderAuth draws the login or register card centred in the body.
func (m Model) renderAuth(height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)

	register := m.activeScreen() == ScreenRegister
	title, subtitle := "Welcome back 👋", "Enter your credentials to continue."
	fields, inputs := loginFields, m.loginInputs
	busyText, submit := "Signing in...", "Login"
	footer, other := "No account yet?", "Register"
	if register {
		title, subtitle = "Create account", "Sign up with your email address."
		fields, inputs = registerFields, m.registerInputs
		busyText, submit = "Creating account...", "Register"
		footer, other = "Already have an account?", "Login"
	}

	cardWidth := min(max(m.width-4, 30), 56)
	innerWidth := cardWidth - 6

	var lines []string
	lines = append(lines, bg.Render(title, styles.Text.Bold(true)))
	lines = append(lines, bg.Render(subtitle, styles.MutedText))
	lines = append(lines, "")
	for i, f := range fields {
		labelStyle := styles.MutedText
		if i == m.focusIdx {
			labelStyle = styles.AccentText.Bold(true)
		}
		lines = append(lines, bg.Render(f.label, labelStyle))
		lines = append(lines, inputs[i].View())
		lines = append(lines, "")
	}

	if m.formErr != "" {
		for _, l := range wrap(m.formErr, innerWidth) {
			lines = append(lines, bg.Render(l, styles.DangerText))
		}
		lines = append(lines, "")
	}

	if m.busy {
		lines = append(lines, m.spinner.View()+bg.Space()+bg.Render(busyText, styles.MutedText))
	} else {
		lines = append(lines, bg.Render("enter", styles.AccentText)+bg.Render(":", styles.FaintText)+bg.Render(submit, styles.Text))
	}
	lines = append(lines, "")
	lines = append(lines, bg.Render(footer, styles.MutedText)+bg.Space()+
		bg.Render("ctrl+r", styles.AccentText)+bg.Render(":", styles.FaintText)+bg.Render(other, styles.AccentText.Bold(true)))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		BorderBackground(lipgloss.Color(m.theme.Background)).
		Background(lipgloss.Color(m.theme.SurfaceAlt)).
		Padding(1, 2).
		Width(cardWidth).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}
