package features_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/sindy/internal/features"
)

type libraryCase struct {
	name string
	new  func() (features.Library, error)
}

var libraryCases = []libraryCase{
	{"polynomial", func() (features.Library, error) { return features.NewPolynomial() }},
	{"fourier", func() (features.Library, error) { return features.NewFourier() }},
	{"custom", func() (features.Library, error) { return features.NewCustom(lorenzFuncs, lorenzNames) }},
	{"identity", func() (features.Library, error) { return features.NewIdentity(), nil }},
	{"concat", func() (features.Library, error) {
		p, err := features.NewPolynomial(features.WithDegree(1))
		if err != nil {
			return nil, err
		}
		f, err := features.NewFourier()
		if err != nil {
			return nil, err
		}
		return features.NewConcat(p, f)
	}},
}

var _ = Describe("Library contract", func() {
	for _, lc := range libraryCases {
		Context(lc.name, func() {
			var lib features.Library

			BeforeEach(func() {
				var err error
				lib, err = lc.new()
				Expect(err).NotTo(HaveOccurred())
			})

			It("refuses to transform before fit", func() {
				_, err := lib.Transform(lorenzX)
				Expect(err).To(MatchError(features.ErrNotFitted))
				_, err = lib.FeatureNames(nil)
				Expect(err).To(MatchError(features.ErrNotFitted))
			})

			It("matches FitTransform with Fit then Transform", func() {
				Expect(lib.Fit(lorenzX)).To(Succeed())
				separate, err := lib.Transform(lorenzX)
				Expect(err).NotTo(HaveOccurred())

				combined, err := lib.FitTransform(lorenzX)
				Expect(err).NotTo(HaveOccurred())
				Expect(mat.Equal(separate, combined)).To(BeTrue())
			})

			It("is idempotent and leaves the input untouched", func() {
				before := mat.DenseCopyOf(lorenzX)
				first, err := lib.FitTransform(lorenzX)
				Expect(err).NotTo(HaveOccurred())
				second, err := lib.Transform(lorenzX)
				Expect(err).NotTo(HaveOccurred())

				Expect(mat.Equal(first, second)).To(BeTrue())
				Expect(mat.Equal(before, lorenzX)).To(BeTrue())
			})

			It("keeps rows and names in step with columns", func() {
				theta, err := lib.FitTransform(lorenzX)
				Expect(err).NotTo(HaveOccurred())
				r, c := theta.Dims()
				Expect(r).To(Equal(100))
				Expect(c).To(Equal(lib.NumOutputFeatures()))

				names, err := lib.FeatureNames(nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(names).To(HaveLen(c))
			})

			It("transforms new rows with the fitted layout", func() {
				Expect(lib.Fit(lorenzX)).To(Succeed())
				n := lib.NumOutputFeatures()

				theta, err := lib.Transform(lorenzX.Slice(0, 7, 0, 3))
				Expect(err).NotTo(HaveOccurred())
				r, c := theta.Dims()
				Expect(r).To(Equal(7))
				Expect(c).To(Equal(n))
			})

			It("rejects a different input width", func() {
				Expect(lib.Fit(lorenzX)).To(Succeed())
				_, err := lib.Transform(mat.NewDense(5, 2, nil))
				Expect(err).To(MatchError(features.ErrFeatureMismatch))
				_, err = lib.FeatureNames([]string{"x", "y"})
				Expect(err).To(MatchError(features.ErrFeatureMismatch))
			})

			It("rejects empty input", func() {
				Expect(lib.Fit(nil)).To(MatchError(features.ErrEmptyInput))
				Expect(lib.Fit(&mat.Dense{})).To(MatchError(features.ErrEmptyInput))
			})
		})
	}
})

var _ = Describe("Identity", func() {
	It("passes the inputs through", func() {
		id := features.NewIdentity()
		theta, err := id.FitTransform(lorenzX)
		Expect(err).NotTo(HaveOccurred())
		Expect(mat.Equal(theta, lorenzX)).To(BeTrue())

		names, err := id.FeatureNames([]string{"x", "y", "z"})
		Expect(err).NotTo(HaveOccurred())
		Expect(names).To(Equal([]string{"x", "y", "z"}))
	})
})

var _ = Describe("Concat", func() {
	It("places child outputs side by side", func() {
		p, err := features.NewPolynomial()
		Expect(err).NotTo(HaveOccurred())
		f, err := features.NewFourier()
		Expect(err).NotTo(HaveOccurred())
		c, err := features.NewConcat(p, f)
		Expect(err).NotTo(HaveOccurred())

		theta, err := c.FitTransform(lorenzX)
		Expect(err).NotTo(HaveOccurred())
		_, cols := theta.Dims()
		Expect(cols).To(Equal(10 + 6))

		names, err := c.FeatureNames(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(names[9]).To(Equal("x2^2"))
		Expect(names[10]).To(Equal("sin(1 x0)"))
		Expect(theta.At(3, 10)).To(Equal(math.Sin(lorenzX.At(3, 0))))
		Expect(theta.At(3, 1)).To(Equal(lorenzX.At(3, 0)))
	})

	It("rejects an empty or nil child list", func() {
		_, err := features.NewConcat()
		Expect(err).To(MatchError(features.ErrInvalidConfig))
		_, err = features.NewConcat(features.NewIdentity(), nil)
		Expect(err).To(MatchError(features.ErrInvalidConfig))
	})
})
