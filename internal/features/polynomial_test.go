package features_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/san-kum/sindy/internal/features"
)

var _ = Describe("Polynomial", func() {
	It("expands the Lorenz data to every monomial up to degree 2", func() {
		p, err := features.NewPolynomial()
		Expect(err).NotTo(HaveOccurred())

		theta, err := p.FitTransform(lorenzX)
		Expect(err).NotTo(HaveOccurred())

		r, c := theta.Dims()
		Expect(r).To(Equal(100))
		Expect(c).To(Equal(10))
		Expect(p.NumInputFeatures()).To(Equal(3))
		Expect(p.NumOutputFeatures()).To(Equal(10))
	})

	It("orders terms by degree, then lexicographically", func() {
		p, err := features.NewPolynomial()
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Fit(lorenzX)).To(Succeed())

		names, err := p.FeatureNames(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(names).To(Equal([]string{
			"1", "x0", "x1", "x2",
			"x0^2", "x0 x1", "x0 x2", "x1^2", "x1 x2", "x2^2",
		}))

		names, err = p.FeatureNames([]string{"x", "y", "z"})
		Expect(err).NotTo(HaveOccurred())
		Expect(names[5]).To(Equal("x y"))
	})

	It("evaluates each column as the named monomial", func() {
		x := mat.NewDense(2, 2, []float64{
			2, 3,
			-1, 0.5,
		})
		p, err := features.NewPolynomial(features.WithDegree(3))
		Expect(err).NotTo(HaveOccurred())

		theta, err := p.FitTransform(x)
		Expect(err).NotTo(HaveOccurred())
		names, err := p.FeatureNames([]string{"a", "b"})
		Expect(err).NotTo(HaveOccurred())
		Expect(names).To(Equal([]string{
			"1", "a", "b", "a^2", "a b", "b^2", "a^3", "a^2 b", "a b^2", "b^3",
		}))
		Expect(mat.Row(nil, 0, theta)).To(Equal([]float64{1, 2, 3, 4, 6, 9, 8, 12, 18, 27}))
		Expect(mat.Row(nil, 1, theta)).To(Equal([]float64{1, -1, 0.5, 1, -0.5, 0.25, -1, 0.5, -0.25, 0.125}))
	})

	DescribeTable("term count",
		func(opts []features.PolynomialOption, inputs, want int) {
			p, err := features.NewPolynomial(opts...)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Fit(mat.NewDense(4, inputs, nil))).To(Succeed())
			Expect(p.NumOutputFeatures()).To(Equal(want))
		},
		Entry("default on 3 inputs", nil, 3, combin.Binomial(2+3, 3)),
		Entry("degree 3 on 4 inputs", []features.PolynomialOption{features.WithDegree(3)}, 4, combin.Binomial(3+4, 4)),
		Entry("degree 0 is the bias only", []features.PolynomialOption{features.WithDegree(0)}, 3, 1),
		Entry("without bias", []features.PolynomialOption{features.WithBias(false)}, 3, 9),
		Entry("interaction only", []features.PolynomialOption{features.WithInteractionOnly(true)}, 3, 7),
		Entry("no interaction", []features.PolynomialOption{features.WithInteraction(false), features.WithDegree(3)}, 3, 10),
	)

	It("keeps only pure powers without interactions", func() {
		p, err := features.NewPolynomial(features.WithInteraction(false))
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Fit(lorenzX)).To(Succeed())

		names, err := p.FeatureNames(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(names).To(Equal([]string{"1", "x0", "x1", "x2", "x0^2", "x1^2", "x2^2"}))
	})

	It("drops repeated factors with interaction only", func() {
		p, err := features.NewPolynomial(features.WithInteractionOnly(true))
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Fit(lorenzX)).To(Succeed())

		names, err := p.FeatureNames(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(names).To(Equal([]string{"1", "x0", "x1", "x2", "x0 x1", "x0 x2", "x1 x2"}))
	})

	DescribeTable("rejects invalid parameters",
		func(opts ...features.PolynomialOption) {
			p, err := features.NewPolynomial(opts...)
			Expect(err).To(MatchError(features.ErrInvalidConfig))
			Expect(p).To(BeNil())

			var cerr *features.ConfigError
			Expect(err).To(BeAssignableToTypeOf(cerr))
		},
		Entry("negative degree", features.WithDegree(-1)),
		Entry("interaction only without interactions",
			features.WithInteraction(false), features.WithInteractionOnly(true)),
		Entry("no terms", features.WithDegree(0), features.WithBias(false)),
	)
})
