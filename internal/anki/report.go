package anki

import (
	"time"

	"github.com/kpauljoseph/neurocards/pkg/logger"
)

type SkippedCard struct {
	DeckName string
	Front    string
	Hash     string
}

// SyncReport summarises one push of a deck to Anki.
type SyncReport struct {
	DeckName     string
	TotalCards   int
	AddedCount   int
	SkippedCount int
	FailedCount  int
	SkippedCards []SkippedCard
	StartTime    time.Time
	EndTime      time.Time
}

func (r *SyncReport) TimeTaken() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}

func (r *SyncReport) Print(log *logger.Logger) {
	log.Info("Anki sync complete:")
	log.Info("- Deck: %s", r.DeckName)
	log.Info("- Total cards: %d", r.TotalCards)
	log.Info("- Cards added: %d", r.AddedCount)
	log.Info("- Cards skipped: %d", r.SkippedCount)
	log.Info("- Cards failed: %d", r.FailedCount)
	log.Info("- Time taken: %v", r.TimeTaken().Round(time.Millisecond))

	for _, card := range r.SkippedCards {
		log.Debug("- skipped %q (Hash:%s)", card.Front, card.Hash)
	}
}
