package routingkit

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/orderkit/pkg/errors"
)

func vectorPath(dir, name string) string {
	return filepath.Join(dir, name)
}

// writeUint32Vector writes one value per line.
func writeUint32Vector(path string, v []uint32) error {
	return writeLines(path, len(v), func(i int) string {
		return strconv.FormatUint(uint64(v[i]), 10)
	})
}

// writeFloat32Vector writes one value per line, with the shortest decimal
// representation that round-trips a float32.
func writeFloat32Vector(path string, v []float32) error {
	return writeLines(path, len(v), func(i int) string {
		return strconv.FormatFloat(float64(v[i]), 'f', -1, 32)
	})
}

func writeLines(path string, n int, line func(i int) string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for i := 0; i < n; i++ {
		if _, err := w.WriteString(line(i)); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadOrdering reads a text order vector: one node id per line, as produced
// by the console converter in binary_to_text_vector mode. Blank lines are
// ignored; anything else that does not parse as an unsigned integer is an
// INVALID_INPUT error naming the offending line.
func ReadOrdering(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMissingInput, err, "open ordering %s", path)
	}
	defer f.Close()

	var order []uint32
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseUint(line, 10, 32)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err,
				"%s:%d: malformed node id %q", path, lineNo, line)
		}
		order = append(order, uint32(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read ordering %s", path)
	}
	return order, nil
}
