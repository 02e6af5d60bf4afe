package pdf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/kpauljoseph/neurocards/pkg/logger"
)

const (
	QuestionKeyword = "QUESTION"
	AnswerKeyword   = "ANSWER"
)

var ErrInvalidPDF = errors.New("invalid PDF")

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	questionLabel = regexp.MustCompile(`(?i)\bquestion\b\s*:?`)
	answerLabel   = regexp.MustCompile(`(?i)\banswer\b\s*:?`)
)

// Processor pulls deck text out of PDF files. Pages laid out as flashcards
// (a QUESTION marker followed by an ANSWER marker) become a single
// "question :: answer" line; every other page contributes its raw text.
type Processor struct {
	logger *logger.Logger
}

func NewProcessor(logger *logger.Logger) *Processor {
	return &Processor{logger: logger}
}

func (p *Processor) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	p.logger.Debug("Processing PDF: %s", pdfPath)
	pageCount, err := p.preflight(pdfPath)
	if err != nil {
		return "", err
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if n := doc.NumPage(); n != pageCount {
		p.logger.Warn("%s: pdfcpu reports %d pages, fitz %d", filepath.Base(pdfPath), pageCount, n)
	}

	var pages []string

	//Page numbers are zero indexed in the fitz package.
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		text, err := doc.Text(pageNum)
		if err != nil {
			p.logger.Warn("couldn't extract text from page %d: %v", pageNum, err)
			continue
		}

		if line, ok := FlashcardLine(text); ok {
			p.logger.Trace("Found flashcard page: %d", pageNum)
			pages = append(pages, line)
			continue
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}

// preflight reads the page tree through pdfcpu and rejects files without a
// readable page before fitz opens them.
func (p *Processor) preflight(pdfPath string) (int, error) {
	dims, err := api.PageDimsFile(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidPDF, filepath.Base(pdfPath), err)
	}
	if len(dims) == 0 {
		return 0, fmt.Errorf("%w: %s has no pages", ErrInvalidPDF, filepath.Base(pdfPath))
	}

	p.logger.Debug("%s has %d pages", pdfPath, len(dims))
	for i, dim := range dims {
		p.logger.Trace("Page %d dimensions: %.2f x %.2f", i+1, dim.Width, dim.Height)
	}
	return len(dims), nil
}

func ContainsFlashcardMarkers(text string) bool {
	text = strings.ToUpper(text)
	return strings.Contains(text, QuestionKeyword) && strings.Contains(text, AnswerKeyword)
}

// FlashcardLine turns a marker page into a "question :: answer" line. The
// question is the text between the first QUESTION and the first ANSWER
// after it; the answer is everything after that.
func FlashcardLine(text string) (string, bool) {
	if !ContainsFlashcardMarkers(text) {
		return "", false
	}

	q := questionLabel.FindStringIndex(text)
	if q == nil {
		return "", false
	}
	rest := text[q[1]:]
	a := answerLabel.FindStringIndex(rest)
	if a == nil {
		return "", false
	}

	question := collapse(rest[:a[0]])
	answer := collapse(rest[a[1]:])
	if question == "" || answer == "" {
		return "", false
	}
	return question + " :: " + answer, true
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
