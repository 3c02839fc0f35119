package csvcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	columns := []string{"date", "venue", "note"}
	rows := []map[string]string{
		{"date": "2024-06-12", "venue": "Cafe Cau Go, tang 2", "note": "ok"},
		{"date": "2024-06-13", "venue": `quan "Mây"`, "note": "line1\nline2"},
		{"date": "2024-06-14", "venue": "thường", "note": ""},
	}

	encoded, err := Encode(columns, rows)
	require.NoError(t, err)

	gotColumns, gotRows, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, columns, gotColumns)
	assert.Equal(t, rows, gotRows)
}

func TestDecodeEmptyContent(t *testing.T) {
	columns, rows, err := Decode("")
	require.NoError(t, err)
	assert.Nil(t, columns)
	assert.Nil(t, rows)
}

func TestDecodeDropsBlankRows(t *testing.T) {
	content := "date,venue\n2024-06-12,Mây\n,\n\n2024-06-13,Cầu Gỗ\n"
	columns, rows, err := Decode(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "venue"}, columns)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-06-12", rows[0]["date"])
	assert.Equal(t, "2024-06-13", rows[1]["date"])
}

func TestDecodeMissingTrailingColumns(t *testing.T) {
	content := "date,venue,note\n2024-06-12,Mây\n"
	_, rows, err := Decode(content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0]["note"])
}

func TestEncodeRowQuotesReservedCharacters(t *testing.T) {
	line, err := EncodeRow([]string{"a", "b"}, map[string]string{"a": `say "hi"`, "b": "x,y"})
	require.NoError(t, err)
	assert.Equal(t, "\"say \"\"hi\"\"\",\"x,y\"\n", line)
}

func TestEncodePreservesColumnOrder(t *testing.T) {
	columns := []string{"z", "a", "m"}
	encoded, err := Encode(columns, []map[string]string{{"a": "2", "m": "3", "z": "1"}})
	require.NoError(t, err)
	assert.Equal(t, "z,a,m\n1,2,3\n", encoded)
}
