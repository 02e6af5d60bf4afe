package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kpauljoseph/neurocards/internal/gesture"
	"github.com/kpauljoseph/neurocards/internal/session"
)

const (
	minCardWidth  = 30
	maxCardWidth  = 64
	minCardHeight = 7
	maxCardHeight = 13
	previewCards  = 3
)

const formatHelpMarkdown = `**Accepted formats**, one card per line:

- ` + "`front :: back`" + `
- ` + "`front | back`" + `
- ` + "`front<TAB>back`" + `
- ` + "`front  back`" + ` (two or more spaces)

Tabs show as four spaces in the editor. Once a line is edited it is read
with the spaces rule, so keep double spaces out of the back of such a card.
`

// rect is a cell-aligned region of the screen.
type rect struct {
	top, left, width, height int
}

func (r rect) contains(x, y int) bool {
	return x >= r.left && x < r.left+r.width && y >= r.top && y < r.top+r.height
}

func (r rect) bounds(cellWidth float64) gesture.Bounds {
	return gesture.Bounds{
		Left:  float64(r.left) * cellWidth,
		Width: float64(r.width) * cellWidth,
	}
}

func (m model) View() string {
	var out string
	if m.session.Mode() == session.ModeStudy {
		out = m.studyView()
	} else {
		out = m.inputView()
	}
	return clipLines(out, m.viewHeight())
}

func (m model) inputView() string {
	w := m.viewWidth()
	cards, stats := m.session.Preview()

	sections := []string{
		m.centered(m.styles.title.Render("NeuroCards")),
		m.centered(m.styles.subtitle.Render("Paste your notes and generate flashcards")),
		"",
		m.styles.editor.Render(m.editor.View()),
		m.generateButton(len(cards)),
		m.statusLine(),
	}

	if len(cards) > 0 {
		sections = append(sections, "")
		for i, card := range cards {
			if i == previewCards {
				sections = append(sections, m.styles.muted.Render(fmt.Sprintf("  … %d more", len(cards)-previewCards)))
				break
			}
			line := runewidth.Truncate(card.Front+"  →  "+card.Back, max(w-4, 8), "…")
			sections = append(sections, "  "+m.styles.accent.Render(line))
		}
	} else if stats.Lines > stats.Blank {
		sections = append(sections, "", m.styles.muted.Render(fmt.Sprintf("  %d lines without a recognised delimiter", stats.Dropped())))
	}

	body := strings.Join(sections, "\n")
	footer := m.help.ShortHelpView(m.keys.inputHelp())
	if m.formatHelp != "" && lipgloss.Height(body)+lipgloss.Height(m.formatHelp)+2 <= m.viewHeight() {
		body += "\n\n" + m.formatHelp
	}
	return body + "\n" + footer
}

func (m model) generateButton(detected int) string {
	label := fmt.Sprintf("Generate Cards ✨ (%d detected)", detected)
	if !m.session.CanGenerate() {
		return m.centered(m.styles.disabled.Render(label))
	}
	btn := m.styles.button.Render(label)
	if m.session.Len() > 0 {
		btn += m.styles.muted.Render("   C-t back to deck")
	}
	return m.centered(btn)
}

// studyHeader is everything above the card. Its height fixes the card's top
// row for hit testing.
func (m model) studyHeader() string {
	toolbar := m.styles.muted.Render("e edit   x export   a anki   q quit")
	if m.syncing {
		toolbar = m.styles.accent.Render("syncing with Anki…")
	}
	return strings.Join([]string{
		m.centered(m.styles.title.Render("NeuroCards")),
		m.centered(m.styles.subtitle.Render(fmt.Sprintf("Card %d of %d", m.session.Index()+1, m.session.Len()))),
		"",
		m.centered(toolbar),
		"",
	}, "\n")
}

func (m model) cardRect() rect {
	w, h := m.viewWidth(), m.viewHeight()
	width := min(clamp(w-4, minCardWidth, maxCardWidth), w)
	return rect{
		top:    lipgloss.Height(m.studyHeader()),
		left:   max((w-width)/2, 0),
		width:  width,
		height: clamp(h-10, minCardHeight, maxCardHeight),
	}
}

func (m model) studyView() string {
	r := m.cardRect()
	return strings.Join([]string{
		m.studyHeader(),
		m.renderCard(r),
		"",
		m.centered(m.styles.muted.Render("r restart deck")),
		m.centered(m.styles.muted.Render("Tip: swipe the card, tap its edges, or use ← →")),
		m.statusLine(),
	}, "\n")
}

func (m model) renderCard(r rect) string {
	card, _ := m.session.Current()
	label, text, style := "QUESTION", card.Front, m.styles.cardFront
	if m.session.Flipped() {
		label, text, style = "ANSWER", card.Back, m.styles.cardBack
	}

	innerWidth := max(r.width-4, 1)
	textLines := max(r.height-2-4, 1)
	body := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.faceLabel.Render(label),
		"",
		clipLines(m.styles.cardText.Width(innerWidth).Align(lipgloss.Center).Render(text), textLines),
		"",
		m.styles.muted.Render("‹ prev    flip    next ›"),
	)

	return style.
		Width(r.width-2).
		Height(r.height-2).
		Align(lipgloss.Center, lipgloss.Center).
		MarginLeft(r.left).
		Render(body)
}

func (m model) statusLine() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.centered(m.styles.errorText.Render(m.status))
	}
	return m.centered(m.styles.status.Render(m.status))
}

func (m model) centered(s string) string {
	return lipgloss.PlaceHorizontal(m.viewWidth(), lipgloss.Center, s)
}

func renderFormatHelp(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return formatHelpMarkdown
	}
	out, err := r.Render(formatHelpMarkdown)
	if err != nil {
		return formatHelpMarkdown
	}
	return strings.Trim(out, "\n")
}

func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}
