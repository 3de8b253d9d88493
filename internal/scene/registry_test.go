package scene

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry", func() {
	var reg *Registry

	BeforeEach(func() {
		reg = Builtin()
	})

	It("ships twelve scenes in order", func() {
		Expect(reg.Len()).To(Equal(12))
		Expect(reg.Slugs()[0]).To(Equal("orbiting-spheres"))
		Expect(reg.Slugs()[11]).To(Equal("noise-tunnel"))
	})

	It("keeps every default inside its own bounds", func() {
		Expect(reg.ValidateAll()).To(Succeed())
		for _, d := range reg.All() {
			Expect(Validate(d)).To(Succeed(), d.Slug)
		}
	})

	It("looks scenes up by slug or route", func() {
		d, err := reg.Lookup("perlin-noise-map")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Title).To(Equal("Perlin Noise Grid"))

		d, err = reg.Lookup("/viz/fractal-cubes")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Slug).To(Equal("fractal-cubes"))
	})

	It("reports unknown slugs as not found", func() {
		_, err := reg.Lookup("/viz/does-not-exist")
		Expect(errors.Is(err, ErrNotFound)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("does-not-exist"))
	})

	It("does not let callers mutate stored descriptors", func() {
		all := reg.All()
		all[0].Title = "changed"
		all[0].Params[0].Default = 999.0

		d, _ := reg.Lookup(all[0].Slug)
		Expect(d.Title).To(Equal("Orbiting Spheres Playground"))
		Expect(d.Params[0].Default).To(Equal(25.0))
	})

	It("rejects duplicate and empty slugs", func() {
		_, err := NewRegistry(Descriptor{Slug: "a"}, Descriptor{Slug: "a"})
		Expect(err).To(MatchError(ErrDuplicateSlug))

		_, err = NewRegistry(Descriptor{Slug: "  "})
		Expect(err).To(MatchError(ErrInvalidDescriptor))
	})
})

var _ = Describe("Validate", func() {
	DescribeTable("rejects bad defaults",
		func(p ParamSpec) {
			err := Validate(Descriptor{Slug: "s", Params: []ParamSpec{p}})
			Expect(err).To(MatchError(ErrDefaultOutOfBounds))
			var se *SpecError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Param).To(Equal(p.Name))
		},
		Entry("number above max", ParamSpec{Name: "n", Kind: KindNumber, Min: 0, Max: 1, Default: 2.0}),
		Entry("number below min", ParamSpec{Name: "n", Kind: KindNumber, Min: 0, Max: 1, Default: -0.5}),
		Entry("number as string", ParamSpec{Name: "n", Kind: KindNumber, Max: 1, Default: "1"}),
		Entry("select outside options", ParamSpec{Name: "e", Kind: "enum", Options: []string{"a"}, Default: "b"}),
		Entry("bool as number", ParamSpec{Name: "b", Kind: KindBoolean, Default: 1.0}),
		Entry("short colour", ParamSpec{Name: "c", Kind: KindColor, Default: "red"}),
	)

	It("accepts unknown kinds", func() {
		d := Descriptor{Slug: "s", Params: []ParamSpec{{Name: "g", Kind: "gradient", Default: "x"}}}
		Expect(Validate(d)).To(Succeed())
	})

	It("flags duplicate parameter names", func() {
		d := Descriptor{Slug: "s", Params: []ParamSpec{
			{Name: "x", Kind: KindBoolean, Default: true},
			{Name: "x", Kind: KindBoolean, Default: false},
		}}
		Expect(Validate(d)).To(MatchError(ErrInvalidDescriptor))
	})
})

var _ = Describe("Catalog", func() {
	It("round trips through yaml preserving order", func() {
		var buf bytes.Buffer
		Expect(EncodeCatalog(&buf, BuiltinDescriptors())).To(Succeed())

		descs, err := DecodeCatalog(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(descs).To(HaveLen(12))
		for i, d := range BuiltinDescriptors() {
			Expect(descs[i].Slug).To(Equal(d.Slug))
			Expect(Validate(descs[i])).To(Succeed())
		}
	})

	It("normalises integer defaults", func() {
		src := `
scenes:
  - slug: tiny
    title: Tiny
    generator: FractalCubesViz
    params:
      - name: depth
        kind: number
        min: 1
        max: 3
        default: 2
`
		descs, err := DecodeCatalog(strings.NewReader(src))
		Expect(err).NotTo(HaveOccurred())
		Expect(descs).To(HaveLen(1))
		Expect(descs[0].Params[0].Default).To(Equal(2.0))
	})

	It("saves and loads from disk", func() {
		path := filepath.Join(GinkgoT().TempDir(), "catalog.yaml")
		Expect(SaveCatalog(path, BuiltinDescriptors()[:3])).To(Succeed())

		descs, err := LoadCatalog(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(descs).To(HaveLen(3))
		Expect(descs[2].Slug).To(Equal("galaxy-network"))
	})

	It("treats an empty document as an empty catalog", func() {
		descs, err := DecodeCatalog(strings.NewReader(""))
		Expect(err).NotTo(HaveOccurred())
		Expect(descs).To(BeEmpty())
	})
})
