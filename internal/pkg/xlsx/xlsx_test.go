package xlsx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriterRoundTrip(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Sheet("Metrics", "date", "spend"))
	require.NoError(t, w.Append("2024-01-01", 100.5))
	require.NoError(t, w.Append("2024-01-02", 0))
	require.NoError(t, w.Sheet("Totals", "spend"))
	require.NoError(t, w.Append(100.5))

	data, err := w.Bytes()
	require.NoError(t, err)

	rows, err := ReadRows(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"date", "spend"},
		{"2024-01-01", "100.5"},
		{"2024-01-02", "0"},
	}, rows)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Metrics", "Totals"}, f.GetSheetList())
}

func TestAppendWithoutSheet(t *testing.T) {
	w := NewWriter()
	assert.Error(t, w.Append("x"))
}

func TestReadRowsRejectsGarbage(t *testing.T) {
	_, err := ReadRows(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}
