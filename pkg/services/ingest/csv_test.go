package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_Basic(t *testing.T) {
	in := "Date, Revenue ,Advertiser\n7/9/2025,$10.50,Acme\n7/10/2025,$4,Bolt\n"

	doc, err := ReadCSV(strings.NewReader(in), 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Revenue", "Advertiser"}, doc.Headers)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, "$10.50", doc.Rows[0]["Revenue"])
	assert.Equal(t, "Bolt", doc.Rows[1]["Advertiser"])
	assert.False(t, doc.Truncated)
}

func TestReadCSV_RaggedRows(t *testing.T) {
	in := "Date,Revenue,Advertiser\n7/9/2025,5\n7/10/2025,6,Acme,extra\n"

	doc, err := ReadCSV(strings.NewReader(in), 0)
	require.NoError(t, err)

	require.Len(t, doc.Rows, 2)
	assert.Equal(t, "", doc.Rows[0]["Advertiser"], "missing cells map to empty")
	assert.Equal(t, "Acme", doc.Rows[1]["Advertiser"], "extra cells are ignored")
}

func TestReadCSV_RowCeiling(t *testing.T) {
	var b strings.Builder
	b.WriteString("Date,Revenue\n")
	for i := 0; i < 10; i++ {
		b.WriteString("7/9/2025,1\n")
	}

	doc, err := ReadCSV(strings.NewReader(b.String()), 3)
	require.NoError(t, err)

	assert.Len(t, doc.Rows, 3)
	assert.True(t, doc.Truncated)
}

func TestReadCSV_Latin1Fallback(t *testing.T) {
	// "Café" with a Latin-1 0xE9 byte, invalid as UTF-8.
	in := []byte("Advertiser,Revenue\nCaf\xe9,5\n")

	doc, err := ReadCSV(strings.NewReader(string(in)), 0)
	require.NoError(t, err)

	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "Café", doc.Rows[0]["Advertiser"])
}

func TestReadCSV_Empty(t *testing.T) {
	doc, err := ReadCSV(strings.NewReader(""), 0)
	require.NoError(t, err)
	assert.Empty(t, doc.Headers)
	assert.Empty(t, doc.Rows)
}

func TestReadCSV_DuplicateHeadersFirstWins(t *testing.T) {
	in := "Revenue,Revenue,Date\n1,2,7/9/2025\n"

	doc, err := ReadCSV(strings.NewReader(in), 0)
	require.NoError(t, err)
	assert.Equal(t, "1", doc.Rows[0]["Revenue"])
}

func TestRead_DispatchesByExtension(t *testing.T) {
	doc, err := Read("report.csv", strings.NewReader("Date,Revenue\n7/9/2025,5\n"), 0)
	require.NoError(t, err)
	assert.Len(t, doc.Rows, 1)

	_, err = Read("report.xlsx", strings.NewReader("not a workbook"), 0)
	assert.Error(t, err)
}
