package features_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/sindy/internal/features"
)

var _ = Describe("FromConfig", func() {
	build := func(doc string) (features.Library, error) {
		var cfg features.Config
		Expect(yaml.Unmarshal([]byte(doc), &cfg)).To(Succeed())
		return features.FromConfig(cfg)
	}

	DescribeTable("builds libraries with the expected width on Lorenz data",
		func(doc string, want int) {
			lib, err := build(doc)
			Expect(err).NotTo(HaveOccurred())
			Expect(lib.Fit(lorenzX)).To(Succeed())
			Expect(lib.NumOutputFeatures()).To(Equal(want))
		},
		Entry("polynomial defaults", "kind: polynomial", 10),
		Entry("polynomial degree 3", "kind: polynomial\ndegree: 3", 20),
		Entry("polynomial without bias", "kind: polynomial\ninclude_bias: false", 9),
		Entry("fourier defaults", "kind: fourier", 6),
		Entry("fourier cos only", "kind: fourier\nn_frequencies: 2\ninclude_sin: false", 6),
		Entry("custom", "kind: custom\nfunctions: [identity, exp, zero]", 9),
		Entry("identity", "kind: Identity", 3),
		Entry("concat", `
kind: concat
libraries:
  - kind: polynomial
    degree: 1
  - kind: fourier
`, 4+6),
	)

	DescribeTable("rejects invalid configurations",
		func(doc string) {
			lib, err := build(doc)
			Expect(err).To(MatchError(features.ErrInvalidConfig))
			Expect(lib).To(BeNil())
		},
		Entry("non-integer degree", "kind: polynomial\ndegree: 1.5"),
		Entry("negative degree", "kind: polynomial\ndegree: -1"),
		Entry("interaction only without interactions",
			"kind: polynomial\ninclude_interaction: false\ninteraction_only: true"),
		Entry("non-integer frequencies", "kind: fourier\nn_frequencies: 2.2"),
		Entry("negative frequencies", "kind: fourier\nn_frequencies: -1"),
		Entry("no trig functions", "kind: fourier\ninclude_sin: false\ninclude_cos: false"),
		Entry("unknown function", "kind: custom\nfunctions: [gamma]"),
		Entry("no functions", "kind: custom"),
		Entry("unknown kind", "kind: wavelet"),
		Entry("missing kind", "degree: 2"),
		Entry("empty concat", "kind: concat"),
		Entry("invalid child", "kind: concat\nlibraries: [{kind: fourier, n_frequencies: 0}]"),
	)

	It("reports the offending parameter", func() {
		_, err := features.FromConfig(features.Config{Kind: features.KindPolynomial, Degree: features.Ptr(1.5)})
		var cerr *features.ConfigError
		Expect(err).To(BeAssignableToTypeOf(cerr))
		cerr = err.(*features.ConfigError)
		Expect(cerr.Library).To(Equal(features.KindPolynomial))
		Expect(cerr.Param).To(Equal("degree"))
	})

	It("round-trips through YAML", func() {
		cfg := features.Config{
			Kind:        features.KindFourier,
			Frequencies: features.Ptr(3.0),
			IncludeSin:  features.Ptr(false),
		}
		data, err := yaml.Marshal(cfg)
		Expect(err).NotTo(HaveOccurred())

		var back features.Config
		Expect(yaml.Unmarshal(data, &back)).To(Succeed())
		Expect(back).To(Equal(cfg))
	})
})
