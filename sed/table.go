package sed

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TableHeader is the first line of an SED table.
const TableHeader = "# log(E)  log (E**2*dN/dE)   Error on log(E**2*dN/dE)   "

// WriteTable writes one "%12.4e  %12.4e  %12.4e " row per point after
// [TableHeader]. Values are linear (MeV, erg/cm²/s) despite the historical
// header.
func WriteTable(w io.Writer, points []Point) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, TableHeader); err != nil {
		return err
	}
	for _, p := range points {
		if _, err := fmt.Fprintf(bw, "%12.4e  %12.4e  %12.4e \n", p.Energy, p.Value, p.Error); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadTable parses an SED table. Comment lines and blank lines are skipped.
// If emax > 0, rows with energy >= emax are dropped.
func ReadTable(r io.Reader, emax float64) ([]Point, error) {
	var out []Point
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: line %d has %d columns", ErrMalformedTable, line, len(fields))
		}
		var v [3]float64
		for i := range v {
			f, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedTable, line, err)
			}
			v[i] = f
		}
		if emax > 0 && v[0] >= emax {
			continue
		}
		out = append(out, Point{Energy: v[0], Value: v[1], Error: v[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
