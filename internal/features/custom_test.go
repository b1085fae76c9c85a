package features_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/sindy/internal/features"
)

var (
	lorenzFuncs = []features.Func{
		func(x float64) float64 { return x },
		math.Exp,
		func(float64) float64 { return 0 },
	}
	lorenzNames = []features.NameFunc{
		func(s string) string { return s },
		func(s string) string { return "exp(" + s + ")" },
		func(string) string { return "0" },
	}
)

var _ = Describe("Custom", func() {
	It("expands the Lorenz data to every function of every input", func() {
		c, err := features.NewCustom(lorenzFuncs, lorenzNames)
		Expect(err).NotTo(HaveOccurred())

		theta, err := c.FitTransform(lorenzX)
		Expect(err).NotTo(HaveOccurred())

		r, cols := theta.Dims()
		Expect(r).To(Equal(100))
		Expect(cols).To(Equal(9))
	})

	It("orders terms by input, then function", func() {
		c, err := features.NewCustom(lorenzFuncs, lorenzNames)
		Expect(err).NotTo(HaveOccurred())

		x := mat.NewDense(1, 2, []float64{0, 1})
		theta, err := c.FitTransform(x)
		Expect(err).NotTo(HaveOccurred())
		Expect(mat.Row(nil, 0, theta)).To(Equal([]float64{0, 1, 0, 1, math.Exp(1), 0}))

		names, err := c.FeatureNames([]string{"u", "v"})
		Expect(err).NotTo(HaveOccurred())
		Expect(names).To(Equal([]string{"u", "exp(u)", "0", "v", "exp(v)", "0"}))
	})

	It("falls back to generated names", func() {
		c, err := features.NewCustom(lorenzFuncs[:2], nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Fit(mat.NewDense(1, 2, nil))).To(Succeed())

		names, err := c.FeatureNames(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(names).To(Equal([]string{"f0(x0)", "f1(x0)", "f0(x1)", "f1(x1)"}))
	})

	It("builds from function/name pairs", func() {
		sq, err := features.Function("square")
		Expect(err).NotTo(HaveOccurred())
		c, err := features.NewCustomTerms(sq)
		Expect(err).NotTo(HaveOccurred())

		theta, err := c.FitTransform(mat.NewDense(1, 1, []float64{3}))
		Expect(err).NotTo(HaveOccurred())
		Expect(theta.At(0, 0)).To(Equal(9.0))

		names, err := c.FeatureNames([]string{"z"})
		Expect(err).NotTo(HaveOccurred())
		Expect(names).To(Equal([]string{"z^2"}))
	})

	DescribeTable("rejects invalid parameters",
		func(funcs []features.Func, names []features.NameFunc) {
			c, err := features.NewCustom(funcs, names)
			Expect(err).To(MatchError(features.ErrInvalidConfig))
			Expect(c).To(BeNil())
		},
		Entry("no functions", nil, nil),
		Entry("fewer names than functions", lorenzFuncs, lorenzNames[:2]),
		Entry("more names than functions", lorenzFuncs[:1], lorenzNames),
		Entry("nil function", []features.Func{nil}, nil),
		Entry("nil name", lorenzFuncs[:1], []features.NameFunc{nil}),
	)

	It("lists the built-in functions", func() {
		Expect(features.FunctionNames()).To(ContainElements("identity", "exp", "zero", "sin", "cos"))
		_, err := features.Function("gamma")
		Expect(err).To(MatchError(features.ErrInvalidConfig))
	})
})
