package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/kpauljoseph/neurocards/pkg/models"
)

// CardHash identifies a card by its content so the same card pushed twice
// can be recognised.
func CardHash(card models.Card) string {
	hasher := sha256.New()
	hasher.Write([]byte(card.Front))
	hasher.Write([]byte{0})
	hasher.Write([]byte(card.Back))
	return hex.EncodeToString(hasher.Sum(nil))
}
