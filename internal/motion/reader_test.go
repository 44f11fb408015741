package motion

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeMot writes body to a temp .mot file and returns its path.
func writeMot(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.mot")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestReadFile_SingleRowAfterHeader(t *testing.T) {
	path := writeMot(t, strings.Join([]string{
		"grf_force_plate",
		"version=1",
		"nRows=1",
		"nColumns=4",
		"endheader",
		"time vy vx vz",
		"0.0 1.0 2.0 3.0",
	}, "\n"))

	table, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, []float64{0.0, 1.0, 2.0, 3.0}, table.Row(0))
	assert.Equal(t, []string{"time", "vy", "vx", "vz"}, table.Columns())
}

func TestParse_SkipsBlankLinesAndCRLF(t *testing.T) {
	body := "header\r\nendheader\r\ntime a b\r\n\r\n0 1 2\r\n   \r\n0.01 1.5 2.5\r\n\r\n"

	table, err := Parse(strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, 3, table.Width())
	assert.Equal(t, []float64{0, 0.01}, table.Time())
}

func TestParse_UniformWidth(t *testing.T) {
	var b strings.Builder
	b.WriteString("endheader\ntime fx fy fz\n")
	for i := 0; i < 50; i++ {
		b.WriteString("0.1\t-2.5e-1  3 4\n")
	}

	table, err := Parse(strings.NewReader(b.String()))
	require.NoError(t, err)
	first := len(table.Row(0))
	for i := 0; i < table.Len(); i++ {
		assert.Len(t, table.Row(i), first)
	}
}

func TestParse_MalformedToken(t *testing.T) {
	body := "endheader\ntime fx\n0 1\n0.1 abc\n"

	table, err := Parse(strings.NewReader(body))
	require.Error(t, err)
	assert.Nil(t, table)
	assert.True(t, errors.Is(err, ErrMalformedData))

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 4, pe.Line)
	assert.Equal(t, "abc", pe.Token)
}

func TestParse_RaggedRow(t *testing.T) {
	body := "endheader\ntime fx fy\n0 1 2\n0.1 1\n"

	_, err := Parse(strings.NewReader(body))
	assert.True(t, errors.Is(err, ErrMalformedData))
}

func TestParse_NoTerminatorTreatsAllLinesAsData(t *testing.T) {
	table, err := Parse(strings.NewReader("0 1\n1 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Empty(t, table.Columns())

	_, err = Parse(strings.NewReader("time fx\n0 1\n"))
	assert.True(t, errors.Is(err, ErrMalformedData))
}

func TestParse_TerminatorMustBeWholeLine(t *testing.T) {
	// "endheaderX" is not the terminator, so the file has no data region marker
	// and its first line fails to parse.
	_, err := Parse(strings.NewReader("endheaderX\ntime\n0\n"))
	assert.True(t, errors.Is(err, ErrMalformedData))

	_, err = Parse(strings.NewReader("endheader now\ntime\n0\n"))
	assert.True(t, errors.Is(err, ErrMalformedData))
}

func TestParse_TerminatorIgnoresSurroundingBlanks(t *testing.T) {
	table, err := Parse(strings.NewReader("header\n  endheader\t\ntime fx\n0 1\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"time", "fx"}, table.Columns())
	assert.Equal(t, []float64{0, 1}, table.Row(0))
}

func TestParse_MismatchedColumnNamesDropped(t *testing.T) {
	table, err := Parse(strings.NewReader("endheader\ntime\n0 1 2\n"))
	require.NoError(t, err)
	assert.Empty(t, table.Columns())
	assert.Equal(t, 3, table.Width())
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "grf_estimated.mot"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataUnavailable))
	assert.False(t, errors.Is(err, ErrMalformedData))
}

func TestReadFile_RereadsEveryCall(t *testing.T) {
	path := writeMot(t, "endheader\ntime fx\n0 1\n")
	first, err := ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("endheader\ntime fx\n0 1\n0.1 2\n"), 0o644))
	second, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Len())
	assert.Equal(t, 2, second.Len())
}
