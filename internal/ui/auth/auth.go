// Package auth is the sign-in and create-account screen.
package auth

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/daybook/internal/ui/styles"
)

// Form selects which form has focus
type Form int

const (
	FormSignIn Form = iota
	FormRegister
)

// LoginRequestMsg asks the app to sign in
type LoginRequestMsg struct {
	Username string
	Password string
}

// RegisterRequestMsg asks the app to create an account
type RegisterRequestMsg struct {
	FullName string
	Email    string
	Password string
}

const (
	loginFallback    = "Invalid credentials"
	registerFallback = "Registration failed"
	missingFields    = "Please fill in all fields"
)

// Model is the auth screen. Inputs are disabled while a request is out.
type Model struct {
	form       Form
	login      []textinput.Model
	register   []textinput.Model
	focus      int
	submitting bool
	loginErr   string
	regErr     string
	notice     string
	spinner    spinner.Model
	styles     *styles.Styles
	width      int
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.Width = 32
	ti.Prompt = ""
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

// New creates the auth screen with the sign-in form focused
func New(s *styles.Styles) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	m := Model{
		login: []textinput.Model{
			newInput("username", false),
			newInput("password", true),
		},
		register: []textinput.Model{
			newInput("full name", false),
			newInput("email", false),
			newInput("password", true),
		},
		spinner: sp,
		styles:  s,
	}
	m.setFocus(FormSignIn, 0)
	return m
}

// Form returns the focused form
func (m Model) Form() Form {
	return m.form
}

// Submitting reports whether a request is in flight
func (m Model) Submitting() bool {
	return m.submitting
}

// Error returns the inline error of form f
func (m Model) Error(f Form) string {
	if f == FormRegister {
		return m.regErr
	}
	return m.loginErr
}

// SetWidth sets the available width
func (m *Model) SetWidth(w int) {
	m.width = w
}

func (m *Model) inputs() []textinput.Model {
	if m.form == FormRegister {
		return m.register
	}
	return m.login
}

func (m *Model) setFocus(f Form, field int) {
	m.form = f
	for i := range m.login {
		m.login[i].Blur()
	}
	for i := range m.register {
		m.register[i].Blur()
	}
	inputs := m.inputs()
	m.focus = (field + len(inputs)) % len(inputs)
	inputs[m.focus].Focus()
}

// Init starts the cursor blinking
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles keys and spinner ticks
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+t":
			other := FormRegister
			if m.form == FormRegister {
				other = FormSignIn
			}
			m.setFocus(other, 0)
			return m, nil
		case "tab", "down":
			m.setFocus(m.form, m.focus+1)
			return m, nil
		case "shift+tab", "up":
			m.setFocus(m.form, m.focus-1)
			return m, nil
		case "enter":
			if m.focus < len(m.inputs())-1 {
				m.setFocus(m.form, m.focus+1)
				return m, nil
			}
			return m.submit()
		case "ctrl+s":
			return m.submit()
		}
	}

	inputs := m.inputs()
	var cmd tea.Cmd
	inputs[m.focus], cmd = inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	m.notice = ""
	for _, in := range m.inputs() {
		if strings.TrimSpace(in.Value()) == "" {
			m.setError(missingFields)
			return m, nil
		}
	}

	m.setError("")
	m.submitting = true

	var request tea.Msg
	if m.form == FormRegister {
		request = RegisterRequestMsg{
			FullName: strings.TrimSpace(m.register[0].Value()),
			Email:    strings.TrimSpace(m.register[1].Value()),
			Password: m.register[2].Value(),
		}
	} else {
		request = LoginRequestMsg{
			Username: strings.TrimSpace(m.login[0].Value()),
			Password: m.login[1].Value(),
		}
	}
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg { return request })
}

func (m *Model) setError(text string) {
	if m.form == FormRegister {
		m.regErr = text
	} else {
		m.loginErr = text
	}
}

// LoginFailed re-enables the form and shows the server message, or the
// generic fallback when there is none.
func (m *Model) LoginFailed(serverMessage string) {
	m.submitting = false
	m.loginErr = orFallback(serverMessage, loginFallback)
}

// RegisterFailed re-enables the form with the server message or fallback
func (m *Model) RegisterFailed(serverMessage string) {
	m.submitting = false
	m.regErr = orFallback(serverMessage, registerFallback)
}

// RegisterSucceeded clears the create-account form and moves focus to
// sign-in. No automatic login happens.
func (m *Model) RegisterSucceeded() {
	m.submitting = false
	m.regErr = ""
	for i := range m.register {
		m.register[i].SetValue("")
	}
	m.setFocus(FormSignIn, 0)
}

// Reset clears everything, used after logout
func (m *Model) Reset(notice string) {
	m.submitting = false
	m.loginErr = ""
	m.regErr = ""
	for i := range m.login {
		m.login[i].SetValue("")
	}
	m.notice = notice
	m.setFocus(FormSignIn, 0)
}

func orFallback(message, fallback string) string {
	if strings.TrimSpace(message) == "" {
		return fallback
	}
	return message
}

// View renders both forms side by side
func (m Model) View() string {
	signIn := m.renderForm(FormSignIn, "Sign in", []string{"Username", "Password"}, m.login, m.loginErr)
	register := m.renderForm(FormRegister, "Create account", []string{"Full name", "Email", "Password"}, m.register, m.regErr)

	forms := lipgloss.JoinHorizontal(lipgloss.Top, signIn, "  ", register)
	if m.width > 0 && m.width < lipgloss.Width(forms) {
		forms = lipgloss.JoinVertical(lipgloss.Left, signIn, register)
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("daybook"))
	b.WriteString(m.styles.Muted.Render("  your tasks, one day at a time"))
	b.WriteString("\n\n")
	if m.notice != "" {
		b.WriteString(m.styles.ToastWarning.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(forms)
	b.WriteString("\n")
	b.WriteString(m.styles.StatusHint.Render("tab: next field  enter: submit  ctrl+t: switch form  ctrl+c: quit"))
	return b.String()
}

func (m Model) renderForm(f Form, title string, labels []string, inputs []textinput.Model, errText string) string {
	var b strings.Builder
	b.WriteString(m.styles.OverlayTitle.Render(title))
	b.WriteString("\n")

	for i, in := range inputs {
		b.WriteString(m.styles.Label.Render(labels[i]))
		b.WriteString("\n")
		style := m.styles.Input
		if m.form == f && i == m.focus {
			style = m.styles.InputFocused
		}
		b.WriteString(style.Render(in.View()))
		b.WriteString("\n")
	}

	button := m.styles.Button
	if m.form == f {
		button = m.styles.ButtonActive
	}
	label := title
	if m.submitting && m.form == f {
		label = m.spinner.View() + " Please wait"
	}
	b.WriteString(button.Render(label))

	if errText != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorText.Render(errText))
	}

	frame := m.styles.Overlay
	if m.form != f {
		frame = frame.BorderForeground(styles.Surface0)
	}
	return frame.Width(40).Render(b.String())
}
