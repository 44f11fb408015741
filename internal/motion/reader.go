package motion

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// HeaderTerminator marks the end of the free-form header.
const HeaderTerminator = "endheader"

// maxLineBytes bounds a single line; wide exports carry hundreds of columns.
const maxLineBytes = 4 * 1024 * 1024

// ReadFile opens path and parses it with Parse.
//
// A path that does not exist yields an error matching ErrDataUnavailable.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
		}
		return nil, fmt.Errorf("failed to open motion file: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse reads a motion file from r.
//
// The line equal to HeaderTerminator and the single column-name line after it
// are consumed as header; every later non-blank line is one row. When the
// terminator never appears, every line is treated as data.
func Parse(r io.Reader) (*Table, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read motion data: %w", err)
	}

	start := 0
	var columns []string
	for i, line := range lines {
		// Surrounding blanks are ignored so CRLF files parse.
		if strings.TrimSpace(line) == HeaderTerminator {
			start = i + 2
			if i+1 < len(lines) {
				columns = strings.Fields(lines[i+1])
			}
			break
		}
	}

	var rows [][]float64
	width := -1
	for i := start; i < len(lines); i++ {
		fields := strings.Fields(lines[i])
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for j, tok := range fields {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, &ParseError{Line: i + 1, Token: tok, Err: err}
			}
			row[j] = v
		}
		if width < 0 {
			width = len(row)
		} else if len(row) != width {
			return nil, &ParseError{Line: i + 1, Err: fmt.Errorf("row has %d values, want %d", len(row), width)}
		}
		rows = append(rows, row)
	}

	if len(columns) != width {
		// Header names that do not line up with the data are not trusted.
		columns = nil
	}
	return NewTable(columns, rows)
}

func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
