package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kpauljoseph/neurocards/pkg/models"
)

const DefaultFileName = "NeuroCards_export.txt"

// Encode renders cards as tab separated lines, one card per line, with no
// trailing newline. Anki imports this format as plain text.
func Encode(cards []models.Card) []byte {
	lines := make([]string, len(cards))
	for i, card := range cards {
		lines[i] = card.Front + "\t" + card.Back
	}
	return []byte(strings.Join(lines, "\n"))
}

func Write(w io.Writer, cards []models.Card) error {
	_, err := w.Write(Encode(cards))
	return err
}

// WriteFile writes the export into dir and returns the full path.
func WriteFile(dir, name string, cards []models.Card) (string, error) {
	if name == "" {
		name = DefaultFileName
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	if err := Write(f, cards); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
