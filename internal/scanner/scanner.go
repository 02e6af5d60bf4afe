package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kpauljoseph/neurocards/pkg/logger"
)

var textExtensions = map[string]bool{
	".txt":  true,
	".text": true,
	".md":   true,
	".tsv":  true,
}

const pdfExtension = ".pdf"

// InputFile is a file the deck text can be loaded from.
type InputFile struct {
	AbsolutePath string
	RelativePath string
	IsPDF        bool
}

type DirectoryScanner struct {
	logger  *logger.Logger
	exclude map[string]bool
}

func New(logger *logger.Logger) *DirectoryScanner {
	return &DirectoryScanner{logger: logger, exclude: map[string]bool{}}
}

// Exclude keeps the given files out of later scans, such as the export file
// when it is written inside the scanned tree.
func (s *DirectoryScanner) Exclude(paths ...string) {
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			s.exclude[abs] = true
		}
	}
}

func IsText(path string) bool {
	return textExtensions[strings.ToLower(filepath.Ext(path))]
}

func IsPDF(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == pdfExtension
}

// FindInputs walks dir and returns every text or PDF file in lexical order
// of relative path.
func (s *DirectoryScanner) FindInputs(ctx context.Context, dir string) ([]InputFile, error) {
	var inputs []InputFile

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			s.logger.Trace("Scanning directory: %s", path)
			return nil
		}

		if !IsText(path) && !IsPDF(path) {
			return nil
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			absPath = path
		}
		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			relPath = path
		}

		if s.exclude[absPath] {
			s.logger.Debug("Skipping excluded file: %s", relPath)
			return nil
		}

		s.logger.Debug("Found input file: %s", relPath)
		inputs = append(inputs, InputFile{
			AbsolutePath: absPath,
			RelativePath: relPath,
			IsPDF:        IsPDF(path),
		})
		return nil
	})

	if err != nil {
		return nil, err
	}

	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input files found in %s or its subdirectories", dir)
	}

	sort.Slice(inputs, func(i, j int) bool {
		return inputs[i].RelativePath < inputs[j].RelativePath
	})
	return inputs, nil
}
