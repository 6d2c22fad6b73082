// ABOUTME: Interactive TUI wizard for storing a blogging platform token.
// ABOUTME: Pick a platform from a list, paste its token, then validate it with the platform.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Step represents the current wizard step.
type Step int

const (
	StepPlatform Step = iota
	StepToken
	StepValidating
	StepDone
	StepFailed
)

type validationResultMsg struct {
	err error
}

// ValidateFn checks a token against its platform.
type ValidateFn func(ctx context.Context, platform, token string) error

// pendingValidation is shared by every copy of the model so Ctrl+C can
// cancel a check started from an earlier copy.
type pendingValidation struct {
	cancel context.CancelFunc
}

func (p *pendingValidation) stop() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// SetupModel is the bubbletea model for the setup wizard.
type SetupModel struct {
	step      Step
	platforms []string
	cursor    int
	token     textinput.Model
	spinner   spinner.Model

	validateFn ValidateFn
	pending    *pendingValidation
	err        error
	quitting   bool
}

var (
	brandStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// NewSetupModel creates a wizard offering platforms, with the first one
// selected. A nil validate accepts every token.
func NewSetupModel(platforms []string, validate ValidateFn) SetupModel {
	token := textinput.New()
	token.Placeholder = "paste your API token"
	token.EchoMode = textinput.EchoPassword
	token.Width = 50

	s := spinner.New()
	s.Spinner = spinner.Dot

	if validate == nil {
		validate = func(context.Context, string, string) error { return nil }
	}

	return SetupModel{
		step:       StepPlatform,
		platforms:  platforms,
		token:      token,
		spinner:    s,
		validateFn: validate,
		pending:    &pendingValidation{},
	}
}

// Init implements tea.Model.
func (m SetupModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEscape {
			m.pending.stop()
			m.quitting = true
			return m, tea.Quit
		}
		switch m.step {
		case StepPlatform:
			return m.choosePlatform(msg)
		case StepToken:
			return m.enterToken(msg)
		case StepFailed:
			return m.afterFailure(msg)
		}

	case validationResultMsg:
		m.pending.cancel = nil
		if msg.err != nil {
			m.err = msg.err
			m.step = StepFailed
			return m, nil
		}
		m.step = StepDone
		return m, tea.Quit

	case spinner.TickMsg:
		if m.step == StepValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m SetupModel) choosePlatform(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.platforms)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.platforms) == 0 {
			return m, nil
		}
		m.step = StepToken
		return m, m.token.Focus()
	}
	return m, nil
}

func (m SetupModel) enterToken(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		if strings.TrimSpace(m.token.Value()) == "" {
			return m, nil
		}
		m.token.Blur()
		return m.validate()
	}
	var cmd tea.Cmd
	m.token, cmd = m.token.Update(msg)
	return m, cmd
}

func (m SetupModel) afterFailure(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		m.err = nil
		return m.validate()
	case "s":
		m.step = StepDone
		return m, tea.Quit
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// validate starts an async token check and the spinner.
func (m SetupModel) validate() (tea.Model, tea.Cmd) {
	m.step = StepValidating

	ctx, cancel := context.WithCancel(context.Background())
	m.pending.cancel = cancel
	platform, token := m.Result()
	fn := m.validateFn
	check := func() tea.Msg {
		return validationResultMsg{err: fn(ctx, platform, token)}
	}
	return m, tea.Batch(check, m.spinner.Tick)
}

// View implements tea.Model.
func (m SetupModel) View() string {
	var b strings.Builder
	b.WriteString("\n" + brandStyle.Render("   BLOGPUB") + titleStyle.Render(" - Setup") + "\n\n")

	switch m.step {
	case StepPlatform:
		b.WriteString("Which platform?\n\n")
		for i, name := range m.platforms {
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> "+name) + "\n")
			} else {
				b.WriteString("  " + name + "\n")
			}
		}
		b.WriteString("\n" + hintStyle.Render("↑/↓ to move, enter to select") + "\n")

	case StepToken:
		fmt.Fprintf(&b, "API token for %s:\n\n", m.selected())
		b.WriteString(m.token.View() + "\n")

	case StepValidating:
		fmt.Fprintf(&b, "%s Checking %s token (%s)...\n",
			m.spinner.View(), m.selected(), strings.Repeat("*", len(m.token.Value())))

	case StepDone:
		b.WriteString(successStyle.Render("✓ Token accepted!") + "\n")

	case StepFailed:
		reason := "unknown error"
		if m.err != nil {
			reason = m.err.Error()
		}
		b.WriteString(errorStyle.Render("✗ Validation failed: "+reason) + "\n\n")
		b.WriteString(hintStyle.Render("[r]etry  [s]ave anyway  [q]uit") + "\n")
	}
	return b.String()
}

func (m SetupModel) selected() string {
	if m.cursor < len(m.platforms) {
		return m.platforms[m.cursor]
	}
	return ""
}

// Result returns the selected platform and the trimmed token.
func (m SetupModel) Result() (platform, token string) {
	return m.selected(), strings.TrimSpace(m.token.Value())
}

// ShouldSave reports whether the wizard finished, by a passing check or
// "save anyway", without being cancelled.
func (m SetupModel) ShouldSave() bool {
	return m.step == StepDone && !m.quitting
}
