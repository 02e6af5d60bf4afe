package models_test

import (
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/neurocards/pkg/models"
)

var _ = Describe("Flashcard Models", func() {
	Context("Card", func() {
		It("should properly store front and back", func() {
			card := models.Card{Front: "être", Back: "to be"}

			Expect(card.Front).To(Equal("être"))
			Expect(card.Back).To(Equal("to be"))
		})
	})

	Context("Deck", func() {
		It("should stamp an id and creation time", func() {
			deck := models.NewDeck([]models.Card{{Front: "a", Back: "b"}})

			Expect(deck.ID).NotTo(Equal(uuid.Nil))
			Expect(deck.CreatedAt.IsZero()).To(BeFalse())
			Expect(deck.Len()).To(Equal(1))
		})

		It("should give every deck a distinct id", func() {
			a := models.NewDeck(nil)
			b := models.NewDeck(nil)
			Expect(a.ID).NotTo(Equal(b.ID))
		})

		It("should return cards by index within range only", func() {
			deck := models.NewDeck([]models.Card{{Front: "a", Back: "b"}, {Front: "c", Back: "d"}})

			card, ok := deck.Card(1)
			Expect(ok).To(BeTrue())
			Expect(card).To(Equal(models.Card{Front: "c", Back: "d"}))

			_, ok = deck.Card(2)
			Expect(ok).To(BeFalse())
			_, ok = deck.Card(-1)
			Expect(ok).To(BeFalse())
		})

		It("should treat a nil deck as empty", func() {
			var deck *models.Deck
			Expect(deck.Len()).To(Equal(0))
			_, ok := deck.Card(0)
			Expect(ok).To(BeFalse())
		})
	})
})
