package lp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// Write serializes the problem in CPLEX LP format.
func (p *Problem) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "\\ %s\n", p.Name)
	fmt.Fprintln(bw, "Minimize")
	fmt.Fprint(bw, " obj:")
	for i, t := range p.objective {
		writeTerm(bw, t, i == 0)
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "Subject To")
	for _, c := range p.constraints {
		fmt.Fprintf(bw, " %s:", c.name)
		for i, t := range c.terms {
			writeTerm(bw, t, i == 0)
		}
		fmt.Fprintf(bw, " %s %s\n", c.sense, formatFloat(c.rhs))
	}

	if len(p.bounds) > 0 {
		fmt.Fprintln(bw, "Bounds")
		for _, b := range p.bounds {
			if b.equal {
				fmt.Fprintf(bw, " %s = %s\n", b.v, formatFloat(b.upper))
			} else {
				fmt.Fprintf(bw, " 0 <= %s <= %s\n", b.v, formatFloat(b.upper))
			}
		}
	}

	fmt.Fprintln(bw, "End")
	return bw.Flush()
}

// WriteFile writes the problem to the named file.
func (p *Problem) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	if err := p.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return f.Close()
}

// writeTerm emits one signed coefficient*variable pair. The first term
// of a row carries an explicit sign only when negative.
func writeTerm(w io.Writer, t term, first bool) {
	coef := t.coef
	sign := "+"
	if coef < 0 {
		sign = "-"
		coef = -coef
	}
	if first && sign == "+" {
		if coef == 1 {
			fmt.Fprintf(w, " %s", t.v)
			return
		}
		fmt.Fprintf(w, " %s %s", formatFloat(coef), t.v)
		return
	}
	if coef == 1 {
		fmt.Fprintf(w, " %s %s", sign, t.v)
		return
	}
	fmt.Fprintf(w, " %s %s %s", sign, formatFloat(coef), t.v)
}

func formatFloat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
