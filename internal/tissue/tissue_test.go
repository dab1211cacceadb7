package tissue_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fibersim/internal/muscle"
	"github.com/san-kum/fibersim/internal/tissue"
)

var _ = Describe("Tissue", func() {
	var tis *tissue.Tissue

	BeforeEach(func() {
		tis = tissue.New(5, 0.05, muscle.DefaultParams())
	})

	Describe("construction", func() {
		It("creates the requested number of fibers at rest", func() {
			Expect(tis.Len()).To(Equal(5))
			for i := 0; i < tis.Len(); i++ {
				Expect(tis.Force(i)).To(Equal(0.2))
			}
		})

		It("returns nil for out-of-range fibers", func() {
			Expect(tis.Muscle(-1)).To(BeNil())
			Expect(tis.Muscle(5)).To(BeNil())
		})
	})

	Describe("SetActivation", func() {
		It("clamps the global drive to [0,1]", func() {
			tis.SetActivation(4.2)
			Expect(tis.GlobalActivation()).To(Equal(1.0))

			tis.SetActivation(-1.0)
			Expect(tis.GlobalActivation()).To(Equal(0.0))
		})

		It("pushes 80% of the drive to every fiber", func() {
			tis.SetActivation(0.5)
			for i := 0; i < tis.Len(); i++ {
				Expect(tis.Muscle(i).Activation()).To(BeNumerically("~", 0.4, 1e-12))
			}
		})
	})

	Describe("Stimulate", func() {
		It("is inert while the global drive is zero", func() {
			tis.PumpEnergyToAll(1.0)
			before := tis.Snapshots()

			tis.Stimulate(1.0)

			after := tis.Snapshots()
			for i := range after {
				Expect(after[i].Calcium).To(BeNumerically("<=", before[i].Calcium))
			}
		})

		It("releases calcium in every fiber under drive", func() {
			tis.PumpEnergyToAll(1.0)
			tis.SetActivation(1.0)

			tis.Stimulate(1.0)

			for _, snap := range tis.Snapshots() {
				Expect(snap.Calcium).To(BeNumerically(">", 0.2))
			}
		})
	})

	Describe("PumpEnergy", func() {
		It("ignores out-of-range indexes", func() {
			Expect(func() {
				tis.PumpEnergy(-3, 1.0)
				tis.PumpEnergy(99, 1.0)
			}).NotTo(Panic())
		})

		It("tops up a single fiber", func() {
			tis.PumpEnergy(2, 0.4)
			Expect(tis.Muscle(2).ATP()).To(BeNumerically("~", 0.6, 1e-12))
			Expect(tis.Muscle(0).ATP()).To(Equal(0.2))
		})
	})

	Describe("UpdateNetwork", func() {
		It("keeps all forces finite, above resting and bounded after a pumped tick", func() {
			tis.PumpEnergyToAll(0.2)
			res := tis.UpdateNetwork()

			Expect(res.Forces).To(HaveLen(5))
			for _, f := range res.Forces {
				Expect(math.IsNaN(f)).To(BeFalse())
				Expect(math.IsInf(f, 0)).To(BeFalse())
				Expect(f).To(BeNumerically(">=", 0.2))
				Expect(f).To(BeNumerically("<=", 2.0))
			}
		})

		It("reports consistent aggregates", func() {
			res := tis.UpdateNetwork()

			sum := 0.0
			for _, f := range res.Forces {
				sum += f
			}
			Expect(res.TotalForce).To(BeNumerically("~", sum, 1e-9))
			Expect(res.AverageForce).To(BeNumerically("~", sum/5, 1e-9))
			Expect(res.Snapshots).To(HaveLen(5))
		})

		It("holds the state invariants over a driven run", func() {
			for tick := 0; tick < 300; tick++ {
				if tick%25 == 0 {
					tis.PumpEnergyToAll(0.2)
				}
				tis.SetActivation(0.7)
				tis.Stimulate(1.0)
				res := tis.UpdateNetwork()

				for _, snap := range res.Snapshots {
					Expect(snap.Force).To(BeNumerically(">=", 0.2))
					Expect(snap.ATP).To(BeNumerically(">=", 0.0))
					Expect(snap.ATP).To(BeNumerically("<=", 1.0))
					Expect(snap.Calcium).To(BeNumerically(">=", 0.0))
					Expect(snap.Calcium).To(BeNumerically("<=", 1.0))
					Expect(snap.Damage).To(BeNumerically(">=", 0.0))
					Expect(snap.Damage).To(BeNumerically("<=", 1.0))
					Expect(snap.Alive).To(BeTrue())
				}
			}
		})

		It("lets a strong fiber raise its neighbors' activation through coupling", func() {
			// Make the middle fiber much stronger than its neighbors.
			tis.PumpEnergy(2, 1.0)
			tis.Muscle(2).SetActivation(1.0)
			tis.Muscle(2).UpdateSelf()
			Expect(tis.Force(2)).To(BeNumerically(">", 0.5))

			before1 := tis.Muscle(1).Activation()
			before3 := tis.Muscle(3).Activation()

			tis.UpdateNetwork()

			Expect(tis.Muscle(1).Activation()).To(BeNumerically(">=", before1))
			Expect(tis.Muscle(3).Activation()).To(BeNumerically(">=", before3))
		})
	})
})
