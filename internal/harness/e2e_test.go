package harness_test

import (
	"context"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ginevracianci/gnc-autonomous-system/internal/gnc"
	"github.com/ginevracianci/gnc-autonomous-system/internal/harness"
)

var _ = Describe("Closed-loop scenarios", func() {
	var cfg harness.Config

	BeforeEach(func() {
		cfg = harness.Config{
			Dt:           0.1,
			Duration:     100.0,
			Seed:         42,
			EvalInterval: 10,
		}
	})

	run := func() *harness.Result {
		h, err := harness.New(cfg)
		Expect(err).NotTo(HaveOccurred())
		h.SetLogger(slog.New(slog.DiscardHandler))
		res, err := h.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		return res
	}

	Describe("rendezvous", func() {
		BeforeEach(func() {
			cfg.Scenario = gnc.ScenarioRendezvous
		})

		It("completes the full tick count with finite statistics", func() {
			res := run()

			Expect(res.Ticks).To(Equal(1000))
			Expect(res.Records).To(HaveLen(1000))
			Expect(res.Elapsed).To(BeNumerically("~", 100.0, 1e-6))

			Expect(res.Stats.MeanPosError).To(BeNumerically(">", 0))
			Expect(res.Stats.MaxPosError).To(BeNumerically(">=", res.Stats.MeanPosError))
			Expect(res.Stats.MeanVelError).To(BeNumerically(">=", 0))
			Expect(res.Stats.MaxVelError).To(BeNumerically(">=", res.Stats.MeanVelError))
		})

		It("closes most of the initial range to the hold point", func() {
			res := run()

			initial := res.Records[0].PosError
			final := res.Records[len(res.Records)-1].PosError
			Expect(initial).To(BeNumerically(">", 2000))
			Expect(final).To(BeNumerically("<", initial/2))
		})

		It("warns while outside the abort threshold", func() {
			res := run()

			Expect(res.Warnings).NotTo(BeEmpty())
			for _, w := range res.Warnings {
				Expect(w.Reason).To(ContainSubstring("abort"))
				Expect(w.Tick % cfg.EvalInterval).To(BeZero())
			}
		})
	})

	Describe("touch and go", func() {
		BeforeEach(func() {
			cfg.Scenario = gnc.ScenarioTouchAndGo
		})

		It("descends toward the surface for the full duration", func() {
			res := run()

			Expect(res.Ticks).To(Equal(1000))

			initial := res.Records[0].Position.Norm()
			final := res.FinalState.Position.Norm()
			Expect(final).To(BeNumerically("<", initial/2))
		})

		It("warns when still high after the descent grace window", func() {
			res := run()

			Expect(res.Warnings).NotTo(BeEmpty())
			for _, w := range res.Warnings {
				Expect(w.Time).To(BeNumerically(">", 50.0))
			}
		})
	})

	Describe("an unknown scenario", func() {
		BeforeEach(func() {
			cfg.Scenario = gnc.Scenario("XYZ")
			cfg.Duration = 10.0
		})

		It("runs to completion without warnings", func() {
			res := run()

			Expect(res.Ticks).To(Equal(100))
			Expect(res.Warnings).To(BeEmpty())
		})
	})

	Describe("reproducibility", func() {
		It("replays the identical trajectory for the same seed", func() {
			cfg.Scenario = gnc.ScenarioRendezvous

			a := run()
			b := run()

			Expect(a.FinalState).To(Equal(b.FinalState))
			Expect(a.Stats).To(Equal(b.Stats))
		})
	})
})
