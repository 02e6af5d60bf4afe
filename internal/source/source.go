// Package source loads the raw text a deck is generated from.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kpauljoseph/neurocards/internal/pdf"
	"github.com/kpauljoseph/neurocards/internal/scanner"
	"github.com/kpauljoseph/neurocards/pkg/logger"
)

// StdinPath makes Load read from the configured stdin reader.
const StdinPath = "-"

var ErrUnsupported = errors.New("unsupported input file type")

type Loader struct {
	pdf     pdf.TextExtractor
	scanner *scanner.DirectoryScanner
	stdin   io.Reader
	logger  *logger.Logger
}

func NewLoader(extractor pdf.TextExtractor, stdin io.Reader, log *logger.Logger) *Loader {
	return &Loader{
		pdf:     extractor,
		scanner: scanner.New(log),
		stdin:   stdin,
		logger:  log,
	}
}

// Exclude keeps files out of directory loads. The export file is excluded
// so a deck exported next to its sources is not read back in.
func (l *Loader) Exclude(paths ...string) {
	l.scanner.Exclude(paths...)
}

// Load returns the text behind path: a text file, a PDF, a directory of
// either (joined in lexical order), or stdin for "-".
func (l *Loader) Load(ctx context.Context, path string) (string, error) {
	if path == StdinPath {
		if l.stdin == nil {
			return "", fmt.Errorf("stdin is not available")
		}
		data, err := io.ReadAll(l.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	if !info.IsDir() {
		return l.loadFile(ctx, path)
	}

	inputs, err := l.scanner.FindInputs(ctx, path)
	if err != nil {
		return "", err
	}

	texts := make([]string, 0, len(inputs))
	for _, in := range inputs {
		var text string
		if in.IsPDF {
			text, err = l.loadPDF(ctx, in.AbsolutePath)
		} else {
			text, err = l.loadText(in.AbsolutePath)
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return "", err
			}
			l.logger.Warn("Skipping %s: %v", in.RelativePath, err)
			continue
		}
		texts = append(texts, text)
	}
	l.logger.Debug("Loaded %d of %d input files from %s", len(texts), len(inputs), path)

	return strings.Join(texts, "\n"), nil
}

func (l *Loader) loadFile(ctx context.Context, path string) (string, error) {
	switch {
	case scanner.IsPDF(path):
		return l.loadPDF(ctx, path)
	case scanner.IsText(path):
		return l.loadText(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
}

func (l *Loader) loadPDF(ctx context.Context, path string) (string, error) {
	if l.pdf == nil {
		return "", fmt.Errorf("%w: %s (PDF support disabled)", ErrUnsupported, path)
	}
	return l.pdf.ExtractText(ctx, path)
}

func (l *Loader) loadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
