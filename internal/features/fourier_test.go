package features_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/sindy/internal/features"
)

var _ = Describe("Fourier", func() {
	It("expands the Lorenz data to one sin and one cos per input", func() {
		f, err := features.NewFourier()
		Expect(err).NotTo(HaveOccurred())

		theta, err := f.FitTransform(lorenzX)
		Expect(err).NotTo(HaveOccurred())

		r, c := theta.Dims()
		Expect(r).To(Equal(100))
		Expect(c).To(Equal(6))
	})

	It("orders terms by input, then frequency, sin before cos", func() {
		f, err := features.NewFourier(features.WithFrequencies(2))
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Fit(mat.NewDense(1, 2, nil))).To(Succeed())

		names, err := f.FeatureNames(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(names).To(Equal([]string{
			"sin(1 x0)", "cos(1 x0)", "sin(2 x0)", "cos(2 x0)",
			"sin(1 x1)", "cos(1 x1)", "sin(2 x1)", "cos(2 x1)",
		}))
	})

	It("evaluates sin(k x) and cos(k x)", func() {
		x := mat.NewDense(1, 1, []float64{0.3})
		f, err := features.NewFourier(features.WithFrequencies(2))
		Expect(err).NotTo(HaveOccurred())

		theta, err := f.FitTransform(x)
		Expect(err).NotTo(HaveOccurred())
		row := mat.Row(nil, 0, theta)
		Expect(row[0]).To(BeNumerically("~", math.Sin(0.3), 1e-15))
		Expect(row[1]).To(BeNumerically("~", math.Cos(0.3), 1e-15))
		Expect(row[2]).To(BeNumerically("~", math.Sin(0.6), 1e-15))
		Expect(row[3]).To(BeNumerically("~", math.Cos(0.6), 1e-15))
	})

	It("emits only the enabled functions", func() {
		f, err := features.NewFourier(features.WithFrequencies(3), features.WithSin(false))
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Fit(lorenzX)).To(Succeed())
		Expect(f.NumOutputFeatures()).To(Equal(3 * 3))

		names, err := f.FeatureNames([]string{"x", "y", "z"})
		Expect(err).NotTo(HaveOccurred())
		Expect(names[:3]).To(Equal([]string{"cos(1 x)", "cos(2 x)", "cos(3 x)"}))
	})

	DescribeTable("rejects invalid parameters",
		func(opts ...features.FourierOption) {
			f, err := features.NewFourier(opts...)
			Expect(err).To(MatchError(features.ErrInvalidConfig))
			Expect(f).To(BeNil())
		},
		Entry("negative frequencies", features.WithFrequencies(-1)),
		Entry("zero frequencies", features.WithFrequencies(0)),
		Entry("neither sin nor cos", features.WithSin(false), features.WithCos(false)),
	)
})
