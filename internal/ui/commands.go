package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kpauljoseph/neurocards/internal/anki"
	"github.com/kpauljoseph/neurocards/internal/export"
	"github.com/kpauljoseph/neurocards/pkg/models"
)

func exportCmd(dir, name string, cards []models.Card) tea.Cmd {
	return func() tea.Msg {
		path, err := export.WriteFile(dir, name, cards)
		return exportedMsg{path: path, err: err}
	}
}

func ankiCmd(ctx context.Context, svc *anki.Service, deckName string, cards []models.Card) tea.Cmd {
	return func() tea.Msg {
		report, err := svc.SyncDeck(ctx, deckName, cards)
		return ankiSyncedMsg{report: report, err: err}
	}
}

func (m model) reload() tea.Cmd {
	if m.opts.Loader == nil || m.opts.InputPath == "" {
		return nil
	}
	ctx, loader, path := m.ctx, m.opts.Loader, m.opts.InputPath
	return func() tea.Msg {
		text, err := loader.Load(ctx, path)
		return inputLoadedMsg{text: text, err: err}
	}
}

// waitForChange blocks until the watcher signals. It is re-issued after
// every change.
func (m model) waitForChange() tea.Cmd {
	if m.opts.Watcher == nil {
		return nil
	}
	ctx, changes := m.ctx, m.opts.Watcher.Changes()
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			return inputChangedMsg{}
		}
	}
}
