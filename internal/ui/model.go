package ui

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kpauljoseph/neurocards/internal/anki"
	"github.com/kpauljoseph/neurocards/internal/gesture"
	"github.com/kpauljoseph/neurocards/internal/session"
	"github.com/kpauljoseph/neurocards/internal/source"
	"github.com/kpauljoseph/neurocards/internal/watch"
	"github.com/kpauljoseph/neurocards/pkg/logger"
)

const (
	defaultWidth     = 80
	defaultHeight    = 24
	defaultCellWidth = 8.0

	noCardsMessage = "No valid cards found. Please check your input format."
)

// Options wires the screens to the rest of the application. Session is the
// only required field.
type Options struct {
	Session        *session.Session
	Loader         *source.Loader
	Anki           *anki.Service
	Watcher        *watch.Watcher
	Logger         *logger.Logger
	InputPath      string
	ExportDir      string
	ExportFileName string
	AnkiDeckName   string
	Thresholds     gesture.Thresholds
	// CellWidth is the number of logical pixels per terminal column.
	CellWidth float64
}

type model struct {
	ctx     context.Context
	opts    Options
	session *session.Session
	gesture *gesture.Classifier
	editor  textarea.Model
	help    help.Model
	keys    keyMap
	styles  styles
	logger  *logger.Logger

	formatHelp string
	width      int
	height     int
	status     string
	statusErr  bool
	syncing    bool
}

type exportedMsg struct {
	path string
	err  error
}

type ankiSyncedMsg struct {
	report *anki.SyncReport
	err    error
}

type inputLoadedMsg struct {
	text string
	err  error
}

type inputChangedMsg struct{}

func newModel(ctx context.Context, opts Options) model {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Session == nil {
		opts.Session = session.New(opts.Logger)
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = defaultCellWidth
	}

	editor := textarea.New()
	editor.Placeholder = "être :: to be\navoir | to have\nfaire\tto do\naller   to go"
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.Focus()

	m := model{
		ctx:     ctx,
		opts:    opts,
		session: opts.Session,
		gesture: gesture.New(opts.Thresholds),
		editor:  editor,
		help:    help.New(),
		keys:    defaultKeyMap(),
		styles:  newStyles(neuroPalette),
		logger:  opts.Logger,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.editor.SetValue(displayText(m.session.Input()))
	if m.session.Mode() == session.ModeStudy {
		m.editor.Blur()
	}
	m.resize()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitForChange())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.abortGesture("resize")
		m.resize()
		return m, nil

	case tea.BlurMsg:
		m.abortGesture("focus lost")
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.session.Mode() == session.ModeStudy {
			return m.updateStudy(msg)
		}
		return m.updateInput(msg)

	case exportedMsg:
		if msg.err != nil {
			m.logger.Info("Export failed: %v", msg.err)
			m.setError(fmt.Sprintf("Export failed: %v", msg.err))
			return m, nil
		}
		m.logger.Info("Exported %d cards to %s", m.session.Len(), msg.path)
		m.setStatus("Exported to " + msg.path)
		return m, nil

	case ankiSyncedMsg:
		m.syncing = false
		if msg.report != nil {
			msg.report.Print(m.logger)
		}
		if msg.err != nil {
			m.setError(fmt.Sprintf("Anki sync failed: %v", msg.err))
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Anki: %d added, %d skipped", msg.report.AddedCount, msg.report.SkippedCount))
		return m, nil

	case inputChangedMsg:
		m.logger.Debug("Input %s changed, reloading", m.opts.InputPath)
		return m, tea.Batch(m.reload(), m.waitForChange())

	case inputLoadedMsg:
		m.applyLoaded(msg)
		return m, nil
	}

	if m.session.Mode() == session.ModeInput {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Generate):
		m.generate()
		return m, nil
	case key.Matches(msg, m.keys.Resume):
		if err := m.session.Study(); err != nil {
			m.setError("No deck yet. Generate one first.")
			return m, nil
		}
		m.editor.Blur()
		m.clearStatus()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		if m.opts.InputPath == "" || m.opts.Loader == nil {
			m.setError("No input file to reload.")
			return m, nil
		}
		return m, m.reload()
	}

	if msg.Paste {
		msg.Runes = []rune(displayText(string(msg.Runes)))
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.session.SetInput(after)
		m.clearStatus()
	}
	return m, cmd
}

func (m model) updateStudy(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A key action ends any pointer gesture so its release cannot act twice.
	if key.Matches(msg, m.keys.Prev, m.keys.Next, m.keys.Flip, m.keys.Restart) {
		m.abortGesture("key")
	}
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.abortGesture("escape")
	case key.Matches(msg, m.keys.Prev):
		m.session.Prev()
	case key.Matches(msg, m.keys.Next):
		m.session.Next()
	case key.Matches(msg, m.keys.Flip):
		m.session.Flip()
	case key.Matches(msg, m.keys.Restart):
		m.session.Restart()
		m.setStatus("Restarted deck")
	case key.Matches(msg, m.keys.Edit):
		m.abortGesture("edit")
		m.session.Edit()
		m.clearStatus()
		return m, m.editor.Focus()
	case key.Matches(msg, m.keys.Export):
		cards := m.session.Deck().Cards
		return m, exportCmd(m.opts.ExportDir, m.opts.ExportFileName, cards)
	case key.Matches(msg, m.keys.Anki):
		if m.opts.Anki == nil {
			m.setError("Anki sync is disabled. Run with -anki to enable it.")
			return m, nil
		}
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.setStatus("Pushing deck to Anki...")
		return m, ankiCmd(m.ctx, m.opts.Anki, m.opts.AnkiDeckName, m.session.Deck().Cards)
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) generate() {
	if !m.session.CanGenerate() {
		m.setError("Enter some cards first.")
		return
	}
	if err := m.session.Generate(); err != nil {
		if errors.Is(err, session.ErrNoCards) {
			m.setError(noCardsMessage)
			return
		}
		m.setError(err.Error())
		return
	}
	m.gesture.Cancel()
	m.editor.Blur()
	m.setStatus(fmt.Sprintf("Generated %d cards", m.session.Len()))
}

// applyLoaded adopts reloaded input. In study mode the deck is regenerated
// and a reload that yields no cards keeps the current deck.
func (m *model) applyLoaded(msg inputLoadedMsg) {
	if msg.err != nil {
		m.logger.Info("Error reloading %s: %v", m.opts.InputPath, msg.err)
		m.setError(fmt.Sprintf("Reload failed: %v", msg.err))
		return
	}

	m.session.SetInput(msg.text)
	m.editor.SetValue(displayText(msg.text))

	if m.session.Mode() != session.ModeStudy {
		m.setStatus("Reloaded " + m.opts.InputPath)
		return
	}
	m.abortGesture("reload")
	if err := m.session.Generate(); err != nil {
		m.setError(noCardsMessage)
		return
	}
	m.setStatus(fmt.Sprintf("Reloaded %d cards", m.session.Len()))
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.session.Mode() != session.ModeStudy {
		return
	}

	card := m.cardRect()
	x := m.toPixels(msg.X)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !card.contains(msg.X, msg.Y) {
			return
		}
		if m.gesture.Press(gesture.SourceMouse, x) {
			m.logger.Trace("Gesture started at column %d", msg.X)
		}
	case tea.MouseActionMotion:
		m.gesture.Move(gesture.SourceMouse, x)
	case tea.MouseActionRelease:
		m.gesture.Move(gesture.SourceMouse, x)
		res, ok := m.gesture.Release(card.bounds(m.opts.CellWidth))
		if !ok {
			return
		}
		m.logger.Debug("Gesture resolved: %s %s (dx=%.0f)", res.Kind, res.Action, res.DeltaX)
		m.session.Apply(res.Action)
	}
}

func (m *model) abortGesture(reason string) {
	if m.gesture.Cancel() {
		m.logger.Debug("Gesture aborted: %s", reason)
	}
}

// toPixels maps a terminal column to the logical x of its center.
func (m *model) toPixels(col int) float64 {
	return (float64(col) + 0.5) * m.opts.CellWidth
}

func (m *model) resize() {
	w := m.viewWidth()
	m.editor.SetWidth(max(w-2, 10))
	m.editor.SetHeight(clamp(m.viewHeight()/3, 3, 12))
	m.help.Width = w
	m.formatHelp = renderFormatHelp(w - 4)
}

func (m *model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *model) setError(s string) {
	m.status, m.statusErr = s, true
}

func (m *model) clearStatus() {
	m.status, m.statusErr = "", false
}

func (m model) viewWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m model) viewHeight() int {
	if m.height <= 0 {
		return defaultHeight
	}
	return m.height
}

var tabRun = regexp.MustCompile(`\t+`)

// displayText makes tab separated lines safe for the editor, which does not
// keep literal tabs. Four spaces still parse as a delimiter.
func displayText(s string) string {
	return tabRun.ReplaceAllString(s, "    ")
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
