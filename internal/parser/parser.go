package parser

import (
	"regexp"
	"strings"

	"github.com/kpauljoseph/neurocards/pkg/models"
)

// Delimiter identifies which separator split a line.
type Delimiter int

const (
	DelimiterNone Delimiter = iota
	DelimiterDoubleColon
	DelimiterPipe
	DelimiterTab
	DelimiterSpaces
)

var (
	tabRun   = regexp.MustCompile(`\t+`)
	spaceRun = regexp.MustCompile(`\s{2,}`)
)

func (d Delimiter) String() string {
	switch d {
	case DelimiterDoubleColon:
		return "::"
	case DelimiterPipe:
		return "|"
	case DelimiterTab:
		return "tab"
	case DelimiterSpaces:
		return "spaces"
	default:
		return "none"
	}
}

// Stats counts what happened to each input line. Dropped lines are never
// reported as errors; Stats is the only place they show up.
type Stats struct {
	Lines       int
	Blank       int
	NoDelimiter int
	Malformed   int
	Cards       int
}

func (s Stats) Dropped() int {
	return s.NoDelimiter + s.Malformed
}

// Parse converts freeform text into cards, one per recognised line.
func Parse(text string) []models.Card {
	cards, _ := ParseWithStats(text)
	return cards
}

func ParseWithStats(text string) ([]models.Card, Stats) {
	var (
		cards []models.Card
		stats Stats
	)

	for _, line := range strings.Split(text, "\n") {
		stats.Lines++

		line = strings.TrimSpace(line)
		if line == "" {
			stats.Blank++
			continue
		}

		delim := Detect(line)
		if delim == DelimiterNone {
			stats.NoDelimiter++
			continue
		}

		card, ok := cardFromParts(split(line, delim))
		if !ok {
			stats.Malformed++
			continue
		}

		cards = append(cards, card)
		stats.Cards++
	}

	return cards, stats
}

// ParseLine parses a single line. The boolean is false when the line does
// not yield a card.
func ParseLine(line string) (models.Card, bool) {
	line = strings.TrimSpace(line)
	delim := Detect(line)
	if delim == DelimiterNone {
		return models.Card{}, false
	}
	return cardFromParts(split(line, delim))
}

// Detect returns the highest priority delimiter present in line.
func Detect(line string) Delimiter {
	switch {
	case strings.Contains(line, "::"):
		return DelimiterDoubleColon
	case strings.Contains(line, "|"):
		return DelimiterPipe
	case strings.Contains(line, "\t"):
		return DelimiterTab
	case spaceRun.MatchString(line):
		return DelimiterSpaces
	default:
		return DelimiterNone
	}
}

func split(line string, delim Delimiter) []string {
	var parts []string
	switch delim {
	case DelimiterDoubleColon:
		parts = strings.Split(line, "::")
	case DelimiterPipe:
		parts = strings.Split(line, "|")
	case DelimiterTab:
		parts = tabRun.Split(line, -1)
	case DelimiterSpaces:
		parts = spaceRun.Split(line, -1)
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// cardFromParts takes the first part as the front and folds every other
// non-empty part into the back.
func cardFromParts(parts []string) (models.Card, bool) {
	if len(parts) < 2 || parts[0] == "" {
		return models.Card{}, false
	}

	back := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		if p != "" {
			back = append(back, p)
		}
	}
	if len(back) == 0 {
		return models.Card{}, false
	}

	return models.Card{Front: parts[0], Back: strings.Join(back, " ")}, true
}
