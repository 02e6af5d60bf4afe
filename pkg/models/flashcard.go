package models

import (
	"time"

	"github.com/google/uuid"
)

// Card is one question/answer pair. Cards are produced by the parser and
// never mutated afterwards.
type Card struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Deck is the ordered set of cards being studied. Card order follows the
// order of the input lines.
type Deck struct {
	ID        uuid.UUID `json:"id"`
	Cards     []Card    `json:"cards"`
	CreatedAt time.Time `json:"created_at"`
}

func NewDeck(cards []Card) *Deck {
	return &Deck{
		ID:        uuid.New(),
		Cards:     cards,
		CreatedAt: time.Now(),
	}
}

func (d *Deck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Cards)
}

func (d *Deck) Card(i int) (Card, bool) {
	if d == nil || i < 0 || i >= len(d.Cards) {
		return Card{}, false
	}
	return d.Cards[i], true
}
