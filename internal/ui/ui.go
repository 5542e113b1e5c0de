package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/subform-dev/subform/internal/models"
	"github.com/subform-dev/subform/internal/pipeline"
	"github.com/subform-dev/subform/internal/view"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	InputView ViewState = iota
	RunView
	ResultView
)

// CleanupFunc discards a backend session, best-effort.
type CleanupFunc func(ctx context.Context, sessionID string) error

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	engine  *pipeline.Engine
	cleanup CleanupFunc
	width   int
	height  int

	input    textinput.Model
	bar      progress.Model
	wordList list.Model
	listSet  bool

	progressChan chan pipeline.ProgressUpdate
	status       view.StatusView

	runResult *models.RunResult
	runErr    error
	result    view.ResultView
	running   bool
	cleaned   bool

	help help.Model
	keys keyMap
}

type progressUpdateMsg pipeline.ProgressUpdate

type runCompleteMsg struct {
	result *models.RunResult
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *pipeline.Engine, cleanup CleanupFunc) *Model {
	input := textinput.New()
	input.Placeholder = "https://www.youtube.com/watch?v=..."
	input.Focus()

	return &Model{
		ctx:     ctx,
		view:    InputView,
		engine:  engine,
		cleanup: cleanup,
		input:   input,
		bar:     progress.New(progress.WithDefaultGradient()),
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init starts the cursor blink in the URL input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = msg.Width - 8
		if m.listSet {
			m.wordList.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case InputView:
			return m.handleInputKeys(msg)
		case RunView:
			return m.handleRunKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case progressUpdateMsg:
		m.status = view.ShowStatus(pipeline.ProgressUpdate(msg))
		return m, m.waitForProgress()

	case runCompleteMsg:
		m.running = false
		m.runResult = msg.result
		m.runErr = msg.err
		m.status = view.HideStatus()
		m.view = ResultView
		m.progressChan = nil

		if msg.err != nil {
			m.result = view.ShowError(msg.err)
		} else {
			m.result = view.ShowResult(msg.result)
			m.setWordList(msg.result.Vocabulary)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.view == InputView {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case InputView:
		return m.renderInput()
	case RunView:
		return m.renderRun()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "enter":
		if m.running {
			// One run at a time: re-submission is ignored until a terminal
			// transition re-enables input.
			return m, nil
		}
		if strings.TrimSpace(m.input.Value()) == "" {
			m.runErr = fmt.Errorf("enter a video URL")
			return m, nil
		}
		m.runErr = nil
		m.view = RunView
		return m, m.startRun()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleRunKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// No cancellation mid-pipeline: only quitting the program is allowed.
	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()
	case "r":
		m.cleanupSession()
		m.runResult = nil
		m.runErr = nil
		m.result = view.HideResult()
		m.listSet = false
		m.cleaned = false
		m.input.SetValue("")
		m.input.Focus()
		m.view = InputView
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	if m.listSet {
		m.wordList, cmd = m.wordList.Update(msg)
	}
	return m, cmd
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.cleanupSession()
	return m, tea.Quit
}

// cleanupSession discards the backend session exactly once, best-effort.
func (m *Model) cleanupSession() {
	// Failed runs carry a partial result, so their sessions are released too.
	if m.cleaned || m.cleanup == nil || m.runResult == nil || m.runResult.SessionID == "" {
		return
	}
	m.cleaned = true

	ctx, cancel := context.WithTimeout(m.ctx, 2*time.Second)
	defer cancel()
	_ = m.cleanup(ctx, m.runResult.SessionID)
}

func (m *Model) startRun() tea.Cmd {
	m.running = true
	m.status = view.ShowStatus(pipeline.ProgressUpdate{Message: "Starting...", Percent: 0})
	m.progressChan = make(chan pipeline.ProgressUpdate, 50)

	go func() {
		result, err := m.engine.Run(m.ctx, m.input.Value(), m.progressChan)
		m.runResult = result
		m.runErr = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return runCompleteMsg{result: m.runResult, err: m.runErr}
		}

		update, ok := <-m.progressChan
		if !ok {
			return runCompleteMsg{result: m.runResult, err: m.runErr}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) setWordList(report *models.VocabularyReport) {
	items := wordItems(report)
	if len(items) == 0 {
		m.listSet = false
		return
	}

	m.wordList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.wordList.Title = "Affected words"
	m.wordList.SetSize(m.width-4, m.height-10)
	m.listSet = true
}

func (m *Model) renderInput() string {
	title := styles.title.Render("subform — formalize video captions")

	var errLine string
	if m.runErr != nil {
		errLine = styles.err.Render(fmt.Sprintf("\n%v\n", m.runErr))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s\n%s\n%s", title, m.input.View(), errLine, helpView)
}

func (m *Model) renderRun() string {
	title := styles.title.Render("Processing")
	bar := m.bar.ViewAs(float64(m.status.Percent) / 100)

	return fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s",
		title, bar, m.status.Message, styles.help.Render("q quit"))
}

func (m *Model) renderResult() string {
	if !m.result.Success {
		body := styles.err.Render(fmt.Sprintf("✗ %s", m.result.Message))
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", body, helpView)
	}

	title := styles.ok.Render("✓ " + m.result.Message)

	var link string
	if m.result.DownloadURL != "" {
		link = fmt.Sprintf("\nDownload: %s\n", m.result.DownloadURL)
	} else {
		link = "\n" + styles.warn.Render("No download link available") + "\n"
	}

	var vocab string
	if m.listSet {
		vocab = "\n" + m.wordList.View()
	} else {
		empty := "No vocabulary matches."
		if m.runResult != nil && m.runResult.SoftFailure != "" {
			empty = fmt.Sprintf("Vocabulary extraction failed: %s", m.runResult.SoftFailure)
		}
		vocab = "\n" + styles.warn.Render(empty) + "\n"
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.up, m.keys.down, m.keys.restart, m.keys.quit})
	return fmt.Sprintf("%s%s%s\n%s", title, link, vocab, helpView)
}
