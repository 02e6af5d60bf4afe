package ui

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/neurocards/internal/gesture"
	"github.com/kpauljoseph/neurocards/internal/session"
	"github.com/kpauljoseph/neurocards/pkg/logger"
)

const threeCards = "être :: to be\navoir | to have\nfaire\tto do"

func uiTestLogger() *logger.Logger {
	log := logger.New(
		logger.WithOutput(GinkgoWriter),
		logger.WithPrefix("[ui-test] "),
		logger.WithFlags(0),
	)
	log.SetVerbose(true)
	return log
}

func send(m model, msg tea.Msg) (model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func press(m model, x, y int) model {
	m, _ = send(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	return m
}

func motion(m model, x, y int) model {
	m, _ = send(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	return m
}

func release(m model, x, y int) model {
	m, _ = send(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	return m
}

func click(m model, x, y int) model {
	return release(press(m, x, y), x, y)
}

var _ = Describe("UI", func() {
	var (
		sess *session.Session
		m    model
	)

	newTestModel := func(opts Options) model {
		opts.Session = sess
		opts.Logger = uiTestLogger()
		opts.Thresholds = gesture.DefaultThresholds()
		m := newModel(context.Background(), opts)
		m, _ = send(m, tea.WindowSizeMsg{Width: 80, Height: 24})
		return m
	}

	studying := func(opts Options) model {
		sess.SetInput(threeCards)
		m := newTestModel(opts)
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlG})
		Expect(sess.Mode()).To(Equal(session.ModeStudy))
		return m
	}

	BeforeEach(func() {
		sess = session.New(uiTestLogger())
	})

	Describe("input screen", func() {
		BeforeEach(func() {
			m = newTestModel(Options{})
		})

		It("should keep the session input in sync with typing", func() {
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("dog :: chien")})
			Expect(sess.Input()).To(Equal("dog :: chien"))
			Expect(m.View()).To(ContainSubstring("(1 detected)"))
		})

		It("should keep pasted tab separated lines parseable", func() {
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("faire\tto do"), Paste: true})
			cards, _ := sess.Preview()
			Expect(cards).To(HaveLen(1))
			Expect(cards[0].Front).To(Equal("faire"))
			Expect(cards[0].Back).To(Equal("to do"))
		})

		It("should refuse to generate from blank input", func() {
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlG})
			Expect(sess.Mode()).To(Equal(session.ModeInput))
			Expect(m.status).To(Equal("Enter some cards first."))
		})

		It("should report input without any cards", func() {
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("just a sentence")})
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlG})
			Expect(sess.Mode()).To(Equal(session.ModeInput))
			Expect(m.statusErr).To(BeTrue())
			Expect(m.View()).To(ContainSubstring(noCardsMessage))
		})

		It("should not resume study before a deck exists", func() {
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlT})
			Expect(sess.Mode()).To(Equal(session.ModeInput))
			Expect(m.statusErr).To(BeTrue())
		})

		It("should ignore mouse events", func() {
			m = click(m, 40, 8)
			Expect(m.gesture.Active()).To(BeFalse())
		})
	})

	Describe("study screen", func() {
		var card rect

		BeforeEach(func() {
			m = studying(Options{})
			card = m.cardRect()
		})

		It("should lay the card out below the header", func() {
			Expect(card).To(Equal(rect{top: 5, left: 8, width: 64, height: 13}))
			Expect(m.View()).To(ContainSubstring("Card 1 of 3"))
			Expect(m.View()).To(ContainSubstring("QUESTION"))
			Expect(m.View()).To(ContainSubstring("être"))
		})

		It("should flip on a center tap", func() {
			m = click(m, card.left+card.width/2, card.top+2)
			Expect(sess.Flipped()).To(BeTrue())
			Expect(m.View()).To(ContainSubstring("ANSWER"))
			Expect(m.View()).To(ContainSubstring("to be"))
		})

		It("should go back on a left edge tap", func() {
			m = click(m, card.left+1, card.top+2)
			Expect(sess.Index()).To(Equal(2))
			Expect(m.View()).To(ContainSubstring("Card 3 of 3"))
		})

		It("should advance on a right edge tap", func() {
			m = click(m, card.left+card.width-2, card.top+2)
			Expect(sess.Index()).To(Equal(1))
		})

		It("should advance on a swipe to the left", func() {
			m = press(m, 50, card.top+3)
			m = motion(m, 44, card.top+3)
			m = release(m, 38, card.top+3)
			Expect(sess.Index()).To(Equal(1))
			Expect(sess.Flipped()).To(BeFalse())
		})

		It("should go back on a swipe to the right", func() {
			m = press(m, 30, card.top+3)
			m = motion(m, 36, card.top+3)
			m = release(m, 42, card.top+3)
			Expect(sess.Index()).To(Equal(2))
		})

		It("should treat a short drag as a tap where it ended", func() {
			m = press(m, 40, card.top+3)
			m = motion(m, 44, card.top+3)
			m = release(m, 44, card.top+3)
			Expect(sess.Index()).To(Equal(0))
			Expect(sess.Flipped()).To(BeTrue())
		})

		It("should ignore presses outside the card", func() {
			m = click(m, 40, 1)
			m = click(m, 2, card.top+2)
			Expect(sess.Index()).To(Equal(0))
			Expect(sess.Flipped()).To(BeFalse())
		})

		It("should ignore other buttons", func() {
			m, _ = send(m, tea.MouseMsg{X: 40, Y: card.top + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
			Expect(m.gesture.Active()).To(BeFalse())
		})

		It("should drop the gesture when focus is lost", func() {
			m = press(m, 40, card.top+2)
			m, _ = send(m, tea.BlurMsg{})
			m = release(m, 40, card.top+2)
			Expect(sess.Flipped()).To(BeFalse())
		})

		It("should drop the gesture when the terminal is resized", func() {
			m = press(m, 50, card.top+2)
			m = motion(m, 30, card.top+2)
			m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
			m = release(m, 30, card.top+2)
			Expect(sess.Index()).To(Equal(0))
		})

		It("should drop the gesture on escape", func() {
			m = press(m, 40, card.top+2)
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
			Expect(m.gesture.Active()).To(BeFalse())
		})

		It("should not act twice when a key lands during a gesture", func() {
			m = press(m, card.left+card.width-2, card.top+2)
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight})
			Expect(m.gesture.Active()).To(BeFalse())
			m = release(m, card.left+card.width-2, card.top+2)
			Expect(sess.Index()).To(Equal(1))
			Expect(sess.Flipped()).To(BeFalse())
		})

		It("should keep the card inside a narrow terminal", func() {
			m, _ = send(m, tea.WindowSizeMsg{Width: 24, Height: 24})
			card = m.cardRect()
			Expect(card.left).To(Equal(0))
			Expect(card.width).To(Equal(24))
			Expect(m.View()).To(ContainSubstring("être"))

			m = click(m, card.left+card.width-2, card.top+2)
			Expect(sess.Index()).To(Equal(1))
		})

		It("should navigate with the keyboard", func() {
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight})
			Expect(sess.Index()).To(Equal(1))
			m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace})
			Expect(sess.Flipped()).To(BeTrue())
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyLeft})
			Expect(sess.Index()).To(Equal(0))
			Expect(sess.Flipped()).To(BeFalse())
		})

		It("should restart on the first card front side up", func() {
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight})
			m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace})
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
			Expect(sess.Index()).To(Equal(0))
			Expect(sess.Flipped()).To(BeFalse())
		})

		It("should switch to editing and back without re-parsing", func() {
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight})
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
			Expect(sess.Mode()).To(Equal(session.ModeInput))
			Expect(m.View()).To(ContainSubstring("back to deck"))

			m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlT})
			Expect(sess.Mode()).To(Equal(session.ModeStudy))
			Expect(sess.Index()).To(Equal(1))
		})

		It("should keep the deck when regenerating fails", func() {
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
			sess.SetInput("nothing here")
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlG})
			Expect(m.status).To(Equal(noCardsMessage))
			Expect(sess.Len()).To(Equal(3))
		})

		It("should explain that Anki sync is off", func() {
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
			Expect(m.statusErr).To(BeTrue())
			Expect(m.status).To(ContainSubstring("-anki"))
		})

		It("should quit on q", func() {
			_, cmd := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
			Expect(cmd).NotTo(BeNil())
			Expect(cmd()).To(Equal(tea.Quit()))
		})
	})

	Describe("export", func() {
		It("should write the deck and report the path", func() {
			dir := GinkgoT().TempDir()
			m = studying(Options{ExportDir: dir, ExportFileName: "out.txt"})

			var cmd tea.Cmd
			m, cmd = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
			Expect(cmd).NotTo(BeNil())
			m, _ = send(m, cmd())

			path := filepath.Join(dir, "out.txt")
			Expect(m.status).To(Equal("Exported to " + path))
			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("être\tto be\navoir\tto have\nfaire\tto do"))
		})
	})

	Describe("reloading input", func() {
		It("should regenerate the deck while studying", func() {
			m = studying(Options{InputPath: "cards.txt"})
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight})

			m, _ = send(m, inputLoadedMsg{text: "one :: 1\ntwo :: 2"})
			Expect(sess.Len()).To(Equal(2))
			Expect(sess.Index()).To(Equal(0))
			Expect(m.editor.Value()).To(Equal("one :: 1\ntwo :: 2"))
		})

		It("should keep the old deck when the new input has no cards", func() {
			m = studying(Options{InputPath: "cards.txt"})
			m, _ = send(m, inputLoadedMsg{text: "no cards"})
			Expect(sess.Len()).To(Equal(3))
			Expect(m.status).To(Equal(noCardsMessage))
		})

		It("should tell users how tabs are shown", func() {
			m = newTestModel(Options{})
			Expect(formatHelpMarkdown).To(ContainSubstring("Tabs show as four spaces"))
			Expect(m.formatHelp).NotTo(BeEmpty())
		})

		It("should show tabs as spaces in the editor", func() {
			m = newTestModel(Options{InputPath: "cards.txt"})
			m, _ = send(m, inputLoadedMsg{text: "faire\tto do"})
			Expect(sess.Input()).To(Equal("faire\tto do"))
			Expect(m.editor.Value()).To(Equal("faire    to do"))
		})
	})
})
