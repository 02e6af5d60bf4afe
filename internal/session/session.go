package session

import (
	"errors"
	"strings"

	"github.com/kpauljoseph/neurocards/internal/export"
	"github.com/kpauljoseph/neurocards/internal/gesture"
	"github.com/kpauljoseph/neurocards/internal/parser"
	"github.com/kpauljoseph/neurocards/pkg/logger"
	"github.com/kpauljoseph/neurocards/pkg/models"
)

var (
	ErrNoCards = errors.New("no valid cards found")
	ErrNoDeck  = errors.New("no deck has been generated")
)

type Mode int

const (
	ModeInput Mode = iota
	ModeStudy
)

func (m Mode) String() string {
	if m == ModeStudy {
		return "study"
	}
	return "input"
}

// Next and Prev step an index around a deck of n cards. Both are no-ops
// for n <= 1.
func Next(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i + 1) % n
}

func Prev(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i - 1 + n) % n
}

// Session owns the input text, the active deck and the study position.
// It is driven from a single event loop and does no locking.
type Session struct {
	input   string
	deck    *models.Deck
	index   int
	flipped bool
	mode    Mode
	logger  *logger.Logger
}

func New(log *logger.Logger) *Session {
	if log == nil {
		log = logger.Discard()
	}
	return &Session{mode: ModeInput, logger: log}
}

func (s *Session) SetInput(text string) {
	s.input = text
}

func (s *Session) Input() string {
	return s.input
}

// CanGenerate reports whether the input holds anything but whitespace.
func (s *Session) CanGenerate() bool {
	return strings.TrimSpace(s.input) != ""
}

// Preview parses the current input without adopting it.
func (s *Session) Preview() ([]models.Card, parser.Stats) {
	return parser.ParseWithStats(s.input)
}

// Generate parses the input and, if it yields at least one card, adopts
// the result as the active deck and enters study mode. On ErrNoCards the
// previous deck and mode are left untouched.
func (s *Session) Generate() error {
	cards, stats := parser.ParseWithStats(s.input)
	if len(cards) == 0 {
		s.logger.Debug("Generate rejected: %d lines, %d dropped", stats.Lines, stats.Dropped())
		return ErrNoCards
	}

	s.deck = models.NewDeck(cards)
	s.index = 0
	s.flipped = false
	s.mode = ModeStudy

	s.logger.Info("Adopted deck %s with %d cards (%d lines dropped)", s.deck.ID, len(cards), stats.Dropped())
	return nil
}

// Edit returns to the input screen. The deck stays loaded.
func (s *Session) Edit() {
	s.mode = ModeInput
}

// Study returns to the current deck without re-parsing.
func (s *Session) Study() error {
	if s.deck.Len() == 0 {
		return ErrNoDeck
	}
	s.mode = ModeStudy
	return nil
}

// Restart goes back to the first card, front side up.
func (s *Session) Restart() {
	s.index = 0
	s.flipped = false
	s.logger.Debug("Deck restarted")
}

func (s *Session) Next() {
	s.goTo(Next(s.index, s.deck.Len()))
}

func (s *Session) Prev() {
	s.goTo(Prev(s.index, s.deck.Len()))
}

func (s *Session) Flip() {
	if s.deck.Len() == 0 {
		return
	}
	s.flipped = !s.flipped
}

func (s *Session) goTo(i int) {
	if i != s.index {
		s.flipped = false
	}
	s.index = i
}

// Apply performs the action resolved from a gesture.
func (s *Session) Apply(action gesture.Action) {
	if s.mode != ModeStudy {
		return
	}

	switch action {
	case gesture.ActionNext:
		s.Next()
	case gesture.ActionPrevious:
		s.Prev()
	case gesture.ActionFlip:
		s.Flip()
	default:
		return
	}
	s.logger.Trace("Applied %s: card %d/%d flipped=%t", action, s.index+1, s.deck.Len(), s.flipped)
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) Deck() *models.Deck {
	return s.deck
}

func (s *Session) Index() int {
	return s.index
}

func (s *Session) Len() int {
	return s.deck.Len()
}

func (s *Session) Flipped() bool {
	return s.flipped
}

func (s *Session) Current() (models.Card, bool) {
	return s.deck.Card(s.index)
}

// Export encodes the active deck in the tab separated interchange format.
func (s *Session) Export() ([]byte, error) {
	if s.deck.Len() == 0 {
		return nil, ErrNoDeck
	}
	return export.Encode(s.deck.Cards), nil
}
