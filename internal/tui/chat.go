// Package tui is the interactive terminal chat shell over the conversation
// engine.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/buildagent/multibuild/internal/engine"
)

const engineTimeout = 60 * time.Second

// responseMsg carries the engine's answer back into the Update loop.
type responseMsg struct {
	resp *engine.Response
	err  error
}

type resetMsg struct {
	sessionID string
	err       error
}

// Model is the bubbletea model for the chat shell.
type Model struct {
	engine    *engine.Engine
	sessionID string

	input    textinput.Model
	spin     spinner.Model
	viewport viewport.Model

	messages []string
	waiting  bool
	ready    bool
	width    int
	quitting bool
}

// New creates the chat model. The engine call happens asynchronously via a
// tea.Cmd so the input stays responsive.
func New(eng *engine.Engine) Model {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.Placeholder = "Describe your project, e.g. \"pizza oven 1m x 1m, beginner\""

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		engine: eng,
		input:  ti,
		spin:   sp,
	}
	m.messages = append(m.messages, styleDim.Render(welcomeText))
	return m
}

const welcomeText = `Welcome to MultiBuildAgent. Tell me what you want to build.
Commands: /reset starts over, /quit exits.`

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		headerHeight := 2
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.input.Width = msg.Width - 4
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleSubmit()
		}

	case responseMsg:
		m.waiting = false
		if msg.err != nil {
			m.messages = append(m.messages,
				styleError.Render("Something went wrong: "+msg.err.Error()))
		} else {
			m.messages = append(m.messages, renderResponse(msg.resp))
			m.sessionID = msg.resp.SessionID
		}
		m.refreshViewport()
		return m, nil

	case resetMsg:
		m.waiting = false
		if msg.err != nil {
			m.messages = append(m.messages,
				styleError.Render("Reset failed: "+msg.err.Error()))
		} else {
			m.sessionID = msg.sessionID
			m.messages = append(m.messages,
				styleDim.Render("Session reset. Tell me about your next project."))
		}
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.waiting {
		return m, nil
	}
	m.input.Reset()

	switch strings.ToLower(text) {
	case "/quit", "/q", "/exit":
		m.quitting = true
		return m, tea.Quit
	case "/reset":
		m.waiting = true
		return m, m.resetCmd()
	}

	m.messages = append(m.messages, styleUser.Render("You: ")+text)
	m.refreshViewport()
	m.waiting = true
	return m, tea.Batch(m.sendCmd(text), m.spin.Tick)
}

func (m Model) sendCmd(text string) tea.Cmd {
	eng, sessionID := m.engine, m.sessionID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), engineTimeout)
		defer cancel()
		resp, err := eng.ProcessMessage(ctx, sessionID, text)
		return responseMsg{resp: resp, err: err}
	}
}

func (m Model) resetCmd() tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), engineTimeout)
		defer cancel()
		state, err := eng.Reset(ctx)
		if err != nil {
			return resetMsg{err: err}
		}
		return resetMsg{sessionID: state.ID}
	}
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	wrap := styleAssistant.Width(m.viewport.Width - 2)
	m.viewport.SetContent(wrap.Render(strings.Join(m.messages, "\n\n")))
	m.viewport.GotoBottom()
}

func renderResponse(resp *engine.Response) string {
	var b strings.Builder
	b.WriteString(styleAssistant.Render(resp.Message))
	if resp.Question != nil && len(resp.Question.Suggestions) > 0 {
		b.WriteString("\n" + styleDim.Render(
			"Suggestions: "+strings.Join(resp.Question.Suggestions, " | ")))
	}
	return b.String()
}

func (m Model) View() string {
	if m.quitting {
		return "Bye!\n"
	}
	if !m.ready {
		return "loading..."
	}

	header := styleHeader.Render("MultiBuildAgent") +
		styleDim.Render(fmt.Sprintf("  %s", m.sessionLabel()))

	footer := stylePrompt.Render("> ") + m.input.View()
	if m.waiting {
		footer = m.spin.View() + styleDim.Render(" thinking...")
	}

	return header + "\n" + m.viewport.View() + "\n" + footer
}

func (m Model) sessionLabel() string {
	if m.sessionID == "" {
		return "new session"
	}
	return m.sessionID
}

// Run starts the chat shell and blocks until the user quits.
func Run(eng *engine.Engine) error {
	p := tea.NewProgram(New(eng), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
