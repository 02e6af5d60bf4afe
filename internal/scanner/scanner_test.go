package scanner_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/neurocards/internal/scanner"
	"github.com/kpauljoseph/neurocards/pkg/logger"
)

var _ = Describe("Scanner", func() {
	var (
		testDir    string
		testLogger *logger.Logger
		ctx        context.Context
	)

	BeforeEach(func() {
		var err error
		testDir, err = os.MkdirTemp("", "scanner-test-*")
		Expect(err).NotTo(HaveOccurred())

		testLogger = logger.New(logger.WithOutput(GinkgoWriter), logger.WithPrefix("[test] "))
		testLogger.SetVerbose(true)
		ctx = context.Background()
	})

	AfterEach(func() {
		os.RemoveAll(testDir)
	})

	writeFile := func(rel string) {
		path := filepath.Join(testDir, rel)
		Expect(os.MkdirAll(filepath.Dir(path), 0755)).To(Succeed())
		Expect(os.WriteFile(path, []byte("a::b"), 0644)).To(Succeed())
	}

	Context("when scanning an empty directory", func() {
		It("should return an error", func() {
			s := scanner.New(testLogger)
			_, err := s.FindInputs(ctx, testDir)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("no input files found"))
		})
	})

	Context("when scanning a directory with mixed files", func() {
		BeforeEach(func() {
			writeFile("verbs.txt")
			writeFile("notes.md")
			writeFile("slides.PDF")
			writeFile("image.png")
			writeFile("nested/deeper/nouns.tsv")
		})

		It("should find only supported inputs in lexical order", func() {
			s := scanner.New(testLogger)
			inputs, err := s.FindInputs(ctx, testDir)
			Expect(err).NotTo(HaveOccurred())

			var rel []string
			for _, in := range inputs {
				rel = append(rel, filepath.ToSlash(in.RelativePath))
				Expect(filepath.IsAbs(in.AbsolutePath)).To(BeTrue())
			}
			Expect(rel).To(Equal([]string{"nested/deeper/nouns.tsv", "notes.md", "slides.PDF", "verbs.txt"}))
			Expect(inputs[2].IsPDF).To(BeTrue())
			Expect(inputs[3].IsPDF).To(BeFalse())
		})
	})

	Context("when files are excluded", func() {
		It("should leave them out of the scan", func() {
			writeFile("verbs.txt")
			writeFile("NeuroCards_export.txt")

			s := scanner.New(testLogger)
			s.Exclude(filepath.Join(testDir, "NeuroCards_export.txt"))
			inputs, err := s.FindInputs(ctx, testDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(inputs).To(HaveLen(1))
			Expect(inputs[0].RelativePath).To(Equal("verbs.txt"))
		})
	})

	Context("when context is cancelled", func() {
		It("should stop scanning", func() {
			writeFile("deep/deeper/deepest/cards.txt")

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			s := scanner.New(testLogger)
			_, err := s.FindInputs(ctx, testDir)
			Expect(err).To(Equal(context.Canceled))
		})
	})

	DescribeTable("extension checks",
		func(path string, text, pdf bool) {
			Expect(scanner.IsText(path)).To(Equal(text))
			Expect(scanner.IsPDF(path)).To(Equal(pdf))
		},
		Entry(nil, "a.txt", true, false),
		Entry(nil, "a.MD", true, false),
		Entry(nil, "a.pdf", false, true),
		Entry(nil, "a.docx", false, false),
	)
})
