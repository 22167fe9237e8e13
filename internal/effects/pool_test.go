package effects_test

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/frahmantamala/user-dashboard/internal/effects"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Pool", func() {
	var (
		logger *slog.Logger
		pool   *effects.Pool
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	})

	AfterEach(func() {
		if pool != nil {
			pool.Shutdown()
		}
	})

	It("runs submitted jobs", func() {
		pool = effects.NewPool(effects.Config{MaxWorkers: 2, JobQueueSize: 10}, logger, nil)
		var ran atomic.Int32
		for i := 0; i < 5; i++ {
			Expect(pool.Submit(effects.Job{Name: "count", Run: func(context.Context) { ran.Add(1) }})).To(Succeed())
		}
		Eventually(ran.Load).Should(Equal(int32(5)))
	})

	It("rejects jobs when the queue is full", func() {
		pool = effects.NewPool(effects.Config{MaxWorkers: 1, JobQueueSize: 1}, logger, nil)
		release := make(chan struct{})
		started := make(chan struct{})
		block := effects.Job{Name: "block", Run: func(context.Context) {
			close(started)
			<-release
		}}
		Expect(pool.Submit(block)).To(Succeed())
		Eventually(started).Should(BeClosed())

		noop := effects.Job{Name: "noop", Run: func(context.Context) {}}
		// one job can sit in the dispatcher and one in the queue
		var err error
		for i := 0; i < 3 && err == nil; i++ {
			err = pool.Submit(noop)
		}
		Expect(err).To(MatchError(effects.ErrQueueFull))
		close(release)
	})

	It("survives a panicking job", func() {
		pool = effects.NewPool(effects.Config{MaxWorkers: 1, JobQueueSize: 4}, logger, nil)
		done := make(chan struct{})
		Expect(pool.Submit(effects.Job{Name: "panic", Run: func(context.Context) { panic("boom") }})).To(Succeed())
		Expect(pool.Submit(effects.Job{Name: "after", Run: func(context.Context) { close(done) }})).To(Succeed())
		Eventually(done).Should(BeClosed())
	})

	It("cancels running jobs and refuses new ones after shutdown", func() {
		pool = effects.NewPool(effects.Config{MaxWorkers: 1, JobQueueSize: 4}, logger, nil)
		cancelled := make(chan struct{})
		started := make(chan struct{})
		Expect(pool.Submit(effects.Job{Name: "wait", Run: func(ctx context.Context) {
			close(started)
			<-ctx.Done()
			close(cancelled)
		}})).To(Succeed())
		Eventually(started).Should(BeClosed())

		pool.Shutdown()
		Expect(cancelled).To(BeClosed())
		Expect(pool.Submit(effects.Job{Name: "late", Run: func(context.Context) {}})).To(MatchError(effects.ErrPoolClosed))
	})
})
