// Package dump implements Octave-readable persistence of matrices and
// vectors: one value per whitespace-separated token, row-major, 12
// significant digits, one row per line. Grounded on the teacher's
// zerolog-based logging convention (pkg/logger) for I/O failures, which
// are warnings, not fatal: a failed dump should not abort a run in
// progress.
package dump

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/itohio/kronsolve/internal/tensor"
)

const precision = 12

// WriteMatrix writes m to w in Octave format: one row per line, values
// row-major, whitespace-separated, 12 significant digits. Logs a warning
// and returns the error on failure rather than treating it as fatal.
func WriteMatrix[T tensor.Scalar](w io.Writer, m tensor.MatrixView[T], log zerolog.Logger) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if j > 0 {
				if _, err := bw.WriteString(" "); err != nil {
					log.Warn().Err(err).Msg("dump: write separator failed")
					return err
				}
			}
			if _, err := bw.WriteString(formatValue(float64(m.At(i, j)))); err != nil {
				log.Warn().Err(err).Msg("dump: write value failed")
				return err
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			log.Warn().Err(err).Msg("dump: write newline failed")
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		log.Warn().Err(err).Msg("dump: flush failed")
		return err
	}
	return nil
}

// WriteVector writes v to w as a single Octave-format row.
func WriteVector[T tensor.Scalar](w io.Writer, v tensor.VectorView[T], log zerolog.Logger) error {
	m := v.AsMatrix(1, v.Size(), 1)
	return WriteMatrix[T](w, m, log)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', precision, 64)
}

// ReadMatrix parses an Octave-format matrix from r. Logs a warning and
// returns the error on a malformed line rather than treating it as fatal.
func ReadMatrix[T tensor.Scalar](r io.Reader, log zerolog.Logger) (*tensor.Matrix[T], error) {
	scanner := bufio.NewScanner(r)
	var rows [][]float64
	ncols := -1
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				log.Warn().Err(err).Str("token", f).Msg("dump: malformed value")
				return nil, fmt.Errorf("dump: malformed value %q: %w", f, err)
			}
			row[i] = v
		}
		if ncols == -1 {
			ncols = len(row)
		} else if len(row) != ncols {
			err := fmt.Errorf("dump: ragged row: want %d columns, got %d", ncols, len(row))
			log.Warn().Err(err).Msg("dump: ragged matrix")
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		log.Warn().Err(err).Msg("dump: scan failed")
		return nil, err
	}
	m := tensor.NewMatrix[T](len(rows), ncols)
	for i, row := range rows {
		for j, v := range row {
			m.Set(i, j, T(v))
		}
	}
	return m, nil
}

// ReadVector parses a single-row Octave-format vector from r.
func ReadVector[T tensor.Scalar](r io.Reader, log zerolog.Logger) (*tensor.Vector[T], error) {
	m, err := ReadMatrix[T](r, log)
	if err != nil {
		return nil, err
	}
	if m.Rows() != 1 {
		err := fmt.Errorf("dump: expected single-row vector, got %d rows", m.Rows())
		log.Warn().Err(err).Msg("dump: vector shape")
		return nil, err
	}
	v := tensor.NewVector[T](m.Cols())
	for j := 0; j < m.Cols(); j++ {
		v.Set(j, m.At(0, j))
	}
	return v, nil
}
