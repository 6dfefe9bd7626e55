package format

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/bitgrid/internal/grid"
)

// DefaultDeclaration is the C++ declaration line written above the rows.
const DefaultDeclaration = "std::vector<std::vector<int>> PatternAnimator::grid ="

type options struct {
	declaration string
}

type Option func(*options)

// WithDeclaration replaces the declaration line. It must be a single line so
// the header stays [HeaderLines] long.
func WithDeclaration(decl string) Option {
	return func(o *options) {
		if decl != "" {
			o.declaration = decl
		}
	}
}

func resolve(opts []Option) (options, error) {
	o := options{declaration: DefaultDeclaration}
	for _, opt := range opts {
		opt(&o)
	}
	return o, CheckDeclaration(o.declaration)
}

// CheckDeclaration reports whether decl can be written as the declaration
// line. An empty string is accepted and means [DefaultDeclaration].
func CheckDeclaration(decl string) error {
	if strings.ContainsAny(decl, "\r\n") {
		return ErrDeclaration
	}
	return nil
}

// Encode writes g in the array-literal layout followed by its bit-string.
func Encode(w io.Writer, g *grid.Grid, opts ...Option) error {
	o, err := resolve(opts)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "// %dx%d\n", g.Height(), g.Width())
	bw.WriteString(o.declaration + "\n")
	bw.WriteString("{\n")

	var bits strings.Builder
	bits.Grow(g.Width() * g.Height())
	for y := 0; y < g.Height(); y++ {
		bw.WriteString("\t{")
		for x := 0; x < g.Width(); x++ {
			d := byte('0')
			if g.Get(x, y) {
				d = '1'
			}
			if x > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte(d)
			bits.WriteByte(d)
		}
		bw.WriteByte('}')
		if y != g.Height()-1 {
			bw.WriteByte(',')
		}
		bw.WriteByte('\n')
	}
	bw.WriteString("};\n")
	bw.WriteString(bits.String())

	return bw.Flush()
}
