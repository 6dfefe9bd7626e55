package format_test

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bitgrid/internal/format"
	"github.com/san-kum/bitgrid/internal/grid"
)

func encode(g *grid.Grid, opts ...format.Option) string {
	var buf bytes.Buffer
	Expect(format.Encode(&buf, g, opts...)).To(Succeed())
	return buf.String()
}

func randomGrid(rng *rand.Rand, w, h int) *grid.Grid {
	g := grid.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, rng.Intn(2) == 1)
		}
	}
	return g
}

var _ = Describe("Encode", func() {
	It("writes the header, rows and bit-string", func() {
		g := grid.New(3, 2)
		g.Set(0, 0, true)
		g.Set(2, 1, true)

		Expect(encode(g)).To(Equal(
			"// 2x3\n" +
				format.DefaultDeclaration + "\n" +
				"{\n" +
				"\t{1,0,0},\n" +
				"\t{0,0,1}\n" +
				"};\n" +
				"100001"))
	})

	It("uses a custom declaration", func() {
		out := encode(grid.New(1, 1), format.WithDeclaration("const uint8_t frame[1][1] ="))
		Expect(strings.Split(out, "\n")[1]).To(Equal("const uint8_t frame[1][1] ="))
	})

	It("rejects a multi-line declaration", func() {
		var buf bytes.Buffer
		err := format.Encode(&buf, grid.New(1, 1), format.WithDeclaration("a\nb"))
		Expect(err).To(MatchError(format.ErrDeclaration))
		Expect(buf.Len()).To(BeZero())
	})

	DescribeTable("checks declarations",
		func(decl string, ok bool) {
			err := format.CheckDeclaration(decl)
			if ok {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(err).To(MatchError(format.ErrDeclaration))
			}
		},
		Entry("default", format.DefaultDeclaration, true),
		Entry("empty", "", true),
		Entry("newline", "a\nb", false),
		Entry("carriage return", "a\rb", false),
	)

	It("keeps the bit-string equal to the concatenated rows", func() {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 20; i++ {
			g := randomGrid(rng, 1+rng.Intn(12), 1+rng.Intn(9))
			lines := strings.Split(encode(g), "\n")

			var digits strings.Builder
			for _, l := range lines[format.HeaderLines : len(lines)-2] {
				for _, c := range l {
					if c == '0' || c == '1' {
						digits.WriteRune(c)
					}
				}
			}
			Expect(lines[len(lines)-2]).To(Equal("};"))
			Expect(lines[len(lines)-1]).To(Equal(digits.String()))
		}
	})
})

var _ = Describe("Decode", func() {
	It("round-trips any rectangular grid", func() {
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 50; i++ {
			g := randomGrid(rng, 1+rng.Intn(16), 1+rng.Intn(16))

			doc, err := format.Decode(strings.NewReader(encode(g)))
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Grid.Width()).To(Equal(g.Width()))
			Expect(doc.Grid.Height()).To(Equal(g.Height()))
			Expect(doc.Grid.Equal(g)).To(BeTrue())
			Expect(doc.Consistent()).To(BeTrue())
		}
	})

	It("reads back a grid whose bit-string exceeds a megabyte", func() {
		rng := rand.New(rand.NewSource(7))
		g := randomGrid(rng, 1024, 1025)

		doc, err := format.Decode(strings.NewReader(encode(g)))
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Grid.Equal(g)).To(BeTrue())
		Expect(doc.Consistent()).To(BeTrue())
	})

	It("accepts a trailing brace closing the outer array", func() {
		src := "// 2x2\ndecl\n{\n{1,0},\n{0,1}};\n"
		doc, err := format.Decode(strings.NewReader(src))
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Grid.BitString()).To(Equal("1001"))
		Expect(doc.BitString).To(BeEmpty())
		Expect(doc.Consistent()).To(BeFalse())
	})

	It("tolerates blank lines, CRLF and spacing", func() {
		src := "// 2x2\r\ndecl\r\n{\r\n\r\n  { 1 , 1 } ,\r\n\t{0,0}\r\n};\r\n1100"
		doc, err := format.Decode(strings.NewReader(src))
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Grid.BitString()).To(Equal("1100"))
		Expect(doc.Consistent()).To(BeTrue())
	})

	It("stops at end of file without a closing line", func() {
		doc, err := format.Decode(strings.NewReader("a\nb\nc\n{1,1,1},\n{0,1,0},"))
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Grid.Width()).To(Equal(3))
		Expect(doc.Grid.Height()).To(Equal(2))
	})

	It("flags a bit-string that disagrees with the rows", func() {
		doc, err := format.Decode(strings.NewReader("a\nb\n{\n{1,0}\n};\n11"))
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Consistent()).To(BeFalse())
	})

	DescribeTable("rejects bad rows with a ParseError",
		func(row string, line, col int) {
			src := "// h\ndecl\n{\n{0,0},\n" + row + "\n};\n"
			doc, err := format.Decode(strings.NewReader(src))
			Expect(doc).To(BeNil())
			Expect(err).To(MatchError(format.ErrParse))

			var pe *format.ParseError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Line).To(Equal(line))
			Expect(pe.Col).To(Equal(col))
		},
		Entry("digit out of range", "{0,2}", 5, 4),
		Entry("letter", "{0,x}", 5, 4),
		Entry("missing comma", "{0 1}", 5, 4),
		Entry("empty row", "{}", 5, 2),
		Entry("no opening brace", "0,1}", 5, 1),
		Entry("junk after row", "{0,1} x", 5, 7),
		Entry("multi-digit", "{10,1}", 5, 2),
	)

	DescribeTable("rejects non-rectangular data with a MalformedGridError",
		func(src string) {
			doc, err := format.Decode(strings.NewReader(src))
			Expect(doc).To(BeNil())
			Expect(err).To(MatchError(grid.ErrMalformedGrid))
		},
		Entry("ragged rows", "h\nd\n{\n{1,0,1},\n{1,0}\n};\n10110"),
		Entry("no rows", "h\nd\n{\n};\n"),
		Entry("header only", "h\nd\n"),
		Entry("empty file", ""),
	)
})

var _ = Describe("Load and Save", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("writes the two by two scenario", func() {
		g := grid.New(2, 2)
		g.Toggle(0, 0)
		path := filepath.Join(dir, "grid.cpp")

		Expect(format.Save(path, g)).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		lines := strings.Split(string(data), "\n")
		Expect(lines[3]).To(Equal("\t{1,0},"))
		Expect(lines[4]).To(Equal("\t{0,0}"))
		Expect(lines[6]).To(Equal("1000"))

		doc, err := format.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Grid.Equal(g)).To(BeTrue())
	})

	It("overwrites an existing file entirely", func() {
		path := filepath.Join(dir, "grid.cpp")
		Expect(os.WriteFile(path, []byte(strings.Repeat("x", 4096)), 0o644)).To(Succeed())

		Expect(format.Save(path, grid.New(1, 1))).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).NotTo(ContainSubstring("x"))
	})

	It("leaves the existing file untouched when the declaration is invalid", func() {
		path := filepath.Join(dir, "grid.cpp")
		g := grid.New(2, 2)
		g.Toggle(1, 1)
		Expect(format.Save(path, g)).To(Succeed())
		before, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())

		err = format.Save(path, grid.New(2, 2), format.WithDeclaration("a\nb"))
		Expect(err).To(MatchError(format.ErrDeclaration))

		after, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(after).To(Equal(before))
	})

	It("returns the filesystem error for a missing file", func() {
		_, err := format.Load(filepath.Join(dir, "missing.cpp"))
		Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
	})

	It("names the file in parse errors", func() {
		path := filepath.Join(dir, "bad.cpp")
		Expect(os.WriteFile(path, []byte("a\nb\nc\n{0,3}\n};\n"), 0o644)).To(Succeed())

		_, err := format.Load(path)
		Expect(err).To(MatchError(format.ErrParse))
		Expect(err.Error()).To(HavePrefix(path))
	})

	It("fails to save into a missing directory", func() {
		err := format.Save(filepath.Join(dir, "nope", "grid.cpp"), grid.New(1, 1))
		Expect(err).To(HaveOccurred())
	})
})
