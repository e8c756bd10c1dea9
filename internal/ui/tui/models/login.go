package models

import (
	"context"
	"time"

	"github.com/PizzaHomicide/hookline/internal/auth"
	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/PizzaHomicide/hookline/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/hookline/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/hookline/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const loginTimeout = 30 * time.Second

// LoginModel asks for an email, and for a password once the API says the account has one
type LoginModel struct {
	width, height int
	auth          *auth.Auth

	email        textinput.Model
	password     textinput.Model
	showPassword bool
	focusPass    bool

	submitting bool
	err        string
	spinner    spinner.Model
}

func NewLoginModel(a *auth.Auth) *LoginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = ""
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Accent)

	return &LoginModel{
		auth:     a,
		email:    email,
		password: password,
		spinner:  s,
	}
}

func (m *LoginModel) ViewType() View {
	return ViewLogin
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the form so a new login starts from scratch
func (m *LoginModel) Reset() {
	m.email.SetValue("")
	m.password.SetValue("")
	m.showPassword = false
	m.submitting = false
	m.err = ""
	m.setFocus(false)
}

// SetError shows msg under the form, for example when a stored session expired
func (m *LoginModel) SetError(msg string) {
	m.err = msg
}

func (m *LoginModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submitting {
			return m, Handled("login:busy")
		}
		switch kb.GetActionByKey(msg, kb.ContextLogin) {
		case kb.ActionLogin:
			return m, m.submit()
		case kb.ActionNextField:
			if m.showPassword {
				m.setFocus(!m.focusPass)
			}
			return m, Handled("login:next_field")
		}
		return m, m.updateInputs(msg)

	case spinner.TickMsg:
		if m.submitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case LoginResultMsg:
		m.handleResult(msg.Result)
		return m, nil
	}

	return m, m.updateInputs(msg)
}

func (m *LoginModel) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.focusPass {
		m.password, cmd = m.password.Update(msg)
		return cmd
	}

	before := m.email.Value()
	m.email, cmd = m.email.Update(msg)
	if m.email.Value() != before {
		// A different email may belong to an account without a password
		m.showPassword = false
		m.password.SetValue("")
		m.err = ""
	}
	return cmd
}

func (m *LoginModel) submit() tea.Cmd {
	email := m.email.Value()
	if err := auth.ValidateEmail(email); err != nil {
		m.err = err.Error()
		return Handled("login:invalid_email")
	}

	password := ""
	if m.showPassword {
		password = m.password.Value()
		if password == "" {
			m.err = auth.ErrPasswordRequired.Error()
			return Handled("login:missing_password")
		}
	}

	m.submitting = true
	m.err = ""
	log.Info("Signing in", "email", email, "with_password", password != "")

	a := m.auth
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		defer cancel()
		return LoginResultMsg{Result: a.Login(ctx, email, password)}
	})
}

func (m *LoginModel) handleResult(result auth.Result) {
	m.submitting = false
	switch {
	case result.NeedsPassword:
		m.showPassword = true
		m.err = "This account has a password.  Enter it to continue."
		m.setFocus(true)
	case result.Error != nil:
		m.err = errorText(result.Error)
	}
}

func (m *LoginModel) setFocus(password bool) {
	m.focusPass = password
	if password {
		m.email.Blur()
		m.password.Focus()
	} else {
		m.password.Blur()
		m.email.Focus()
	}
}

func (m *LoginModel) View() string {
	contentWidth := min(m.width, 72)

	header := styles.Header(contentWidth, "hookline")

	content := styles.CenteredText(contentWidth-4, styles.Info.Render("Enter your email to continue")) + "\n"
	content += styles.CenteredText(contentWidth-4,
		styles.Subtle.Render("If you already have an account, the password field will appear automatically.")) + "\n\n"

	content += styles.Label.Render("Email") + "\n" + m.email.View() + "\n"
	if m.showPassword {
		content += "\n" + styles.Label.Render("Password") + "\n" + m.password.View() + "\n"
	}

	switch {
	case m.submitting:
		content += "\n" + m.spinner.View() + " Signing in..."
	case m.err != "":
		content += "\n" + styles.Error.Render(m.err)
	}

	mainContent := styles.ContentBox(contentWidth, content, 1)

	footer := components.KeyBindingsBar(contentWidth, []components.KeyBinding{
		components.Bind(kb.ContextLogin, kb.ActionLogin, "Continue"),
		components.Bind(kb.ContextLogin, kb.ActionNextField, "Switch field"),
		components.Bind(kb.ContextGlobal, kb.ActionQuit, "Quit"),
	})

	combined := lipgloss.JoinVertical(lipgloss.Center, header, mainContent, footer)
	return styles.CenteredView(m.width, m.height, combined)
}

func (m *LoginModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.email.Width = max(min(width, 72)-8, 10)
	m.password.Width = m.email.Width
}
