package bins

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TableHeader is the first line of a per-bin table.
const TableHeader = "# Energy (MeV)\tEmin (MeV)\tEmax (MeV)\tE**2. dN/dE (erg.cm-2s-1)\tGaussianError\tMinosNegativeError\tMinosPositiveError"

// Row is one line of the per-bin table.
type Row struct {
	Energy        float64 // MeV
	Emin          float64 // MeV
	Emax          float64 // MeV
	SED           float64 // erg/cm²/s
	GaussianError float64
	MinosNegative float64
	MinosPositive float64
}

// Rows returns the table rows of the valid bins in bin order. Upper-limit
// rows carry zero errors.
func (p *Points) Rows() []Row {
	var out []Row
	for i := 0; i < p.Len(); i++ {
		if !p.Valid[i] {
			continue
		}
		r := Row{
			Energy: p.Energy[i],
			Emin:   p.Results[i].Emin,
			Emax:   p.Results[i].Emax,
			SED:    p.Flux[i],
		}
		if !p.UpperLimit[i] {
			r.GaussianError = p.GaussianError[i]
			r.MinosNegative = p.FluxErrMinus[i]
			r.MinosPositive = p.FluxErrPlus[i]
		}
		out = append(out, r)
	}
	return out
}

// WriteTable writes rows after [TableHeader], tab separated, each value in
// %12.4e notation.
func WriteTable(w io.Writer, rows []Row) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, TableHeader); err != nil {
		return err
	}
	for _, r := range rows {
		_, err := fmt.Fprintf(bw, "%12.4e\t%12.4e\t%12.4e\t%12.4e\t%12.4e\t%12.4e\t%12.4e\n",
			r.Energy, r.Emin, r.Emax, r.SED, r.GaussianError, r.MinosNegative, r.MinosPositive)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadTable parses a per-bin table written by [WriteTable].
func ReadTable(r io.Reader) ([]Row, error) {
	var out []Row
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 7 {
			return nil, fmt.Errorf("%w: line %d has %d columns, want 7", ErrMalformedTable, line, len(fields))
		}
		var v [7]float64
		for i := range v {
			f, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedTable, line, err)
			}
			v[i] = f
		}
		out = append(out, Row{
			Energy: v[0], Emin: v[1], Emax: v[2], SED: v[3],
			GaussianError: v[4], MinosNegative: v[5], MinosPositive: v[6],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
