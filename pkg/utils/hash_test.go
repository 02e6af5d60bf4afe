package utils_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/neurocards/pkg/models"
	"github.com/kpauljoseph/neurocards/pkg/utils"
)

var _ = Describe("CardHash", func() {
	It("should be stable for the same content", func() {
		a := utils.CardHash(models.Card{Front: "a", Back: "b"})
		b := utils.CardHash(models.Card{Front: "a", Back: "b"})
		Expect(a).To(Equal(b))
		Expect(a).To(HaveLen(64))
	})

	It("should not confuse the boundary between front and back", func() {
		a := utils.CardHash(models.Card{Front: "ab", Back: "c"})
		b := utils.CardHash(models.Card{Front: "a", Back: "bc"})
		Expect(a).NotTo(Equal(b))
	})
})
