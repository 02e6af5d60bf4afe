package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/neurocards/internal/watch"
	"github.com/kpauljoseph/neurocards/pkg/logger"
)

var _ = Describe("Watcher", func() {
	var (
		dir    string
		target string
		ctx    context.Context
		cancel context.CancelFunc
		log    *logger.Logger
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "neurocards-watch-*")
		Expect(err).NotTo(HaveOccurred())
		dir, err = filepath.EvalSymlinks(dir)
		Expect(err).NotTo(HaveOccurred())

		target = filepath.Join(dir, "cards.txt")
		Expect(os.WriteFile(target, []byte("a::b"), 0644)).To(Succeed())

		ctx, cancel = context.WithCancel(context.Background())
		log = logger.New(logger.WithOutput(GinkgoWriter), logger.WithLevel(logger.LevelTrace))
	})

	AfterEach(func() {
		cancel()
		os.RemoveAll(dir)
	})

	It("should signal when the watched file is written", func() {
		w, err := watch.New(target, log)
		Expect(err).NotTo(HaveOccurred())
		defer w.Close()
		go w.Run(ctx)

		Expect(os.WriteFile(target, []byte("a::b\nc::d"), 0644)).To(Succeed())
		Eventually(w.Changes(), 2*time.Second).Should(Receive())
	})

	It("should ignore siblings of the watched file", func() {
		w, err := watch.New(target, log)
		Expect(err).NotTo(HaveOccurred())
		defer w.Close()
		go w.Run(ctx)

		Expect(os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644)).To(Succeed())
		Consistently(w.Changes(), 300*time.Millisecond).ShouldNot(Receive())
	})

	It("should signal for any file in a watched directory", func() {
		w, err := watch.New(dir, log)
		Expect(err).NotTo(HaveOccurred())
		defer w.Close()
		go w.Run(ctx)

		Expect(os.WriteFile(filepath.Join(dir, "more.md"), []byte("x::y"), 0644)).To(Succeed())
		Eventually(w.Changes(), 2*time.Second).Should(Receive())
	})

	It("should ignore writes to excluded files in a watched directory", func() {
		w, err := watch.New(dir, log)
		Expect(err).NotTo(HaveOccurred())
		defer w.Close()
		exported := filepath.Join(dir, "NeuroCards_export.txt")
		w.Ignore(exported)
		go w.Run(ctx)

		Expect(os.WriteFile(exported, []byte("a\tb"), 0644)).To(Succeed())
		Consistently(w.Changes(), 300*time.Millisecond).ShouldNot(Receive())

		Expect(os.WriteFile(target, []byte("c::d"), 0644)).To(Succeed())
		Eventually(w.Changes(), 2*time.Second).Should(Receive())
	})

	It("should fail for a missing path", func() {
		_, err := watch.New(filepath.Join(dir, "missing.txt"), log)
		Expect(err).To(HaveOccurred())
	})
})
