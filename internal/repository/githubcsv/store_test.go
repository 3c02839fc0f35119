package githubcsv

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tranvq/shiftlog/internal/domain/shift"
	"github.com/tranvq/shiftlog/internal/pkg/csvcodec"
	"github.com/tranvq/shiftlog/internal/pkg/github"
)

type fakeRemote struct {
	content  string
	sha      string
	missing  bool
	putCount int
	putSHA   string
	putErr   error
}

func (f *fakeRemote) Fetch(ctx context.Context) (string, string, error) {
	if f.missing {
		return "", "", github.ErrNotFound
	}
	return f.content, f.sha, nil
}

func (f *fakeRemote) Put(ctx context.Context, content, sha, message string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.putCount++
	f.putSHA = sha
	f.content = content
	return nil
}

func sampleRow(date, venue string) shift.Row {
	row := shift.Row{}
	for _, col := range shift.Columns {
		row[col] = ""
	}
	row["date"] = date
	row["venue"] = venue
	row["event_type"] = "Openmic"
	row["base_pay"] = "500000"
	return row
}

func encodeFile(t *testing.T, rows ...shift.Row) string {
	t.Helper()
	content, err := csvcodec.Encode(shift.Columns, rows)
	require.NoError(t, err)
	return content
}

func TestReadAllMissingFile(t *testing.T) {
	store := NewStore(&fakeRemote{missing: true})
	columns, rows, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Nil(t, columns)
	assert.Nil(t, rows)
}

func TestAppendCreatesFileWithHeader(t *testing.T) {
	remote := &fakeRemote{missing: true}
	store := NewStore(remote)

	err := store.Append(context.Background(), sampleRow("2024-06-12", "Mây"))
	require.NoError(t, err)

	assert.Equal(t, 1, remote.putCount)
	assert.Equal(t, "", remote.putSHA)
	assert.True(t, strings.HasPrefix(remote.content, strings.Join(shift.Columns, ",")+"\n"))

	_, rows, err := csvcodec.Decode(remote.content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Mây", rows[0]["venue"])
}

func TestAppendAddsOneLineWithVersionToken(t *testing.T) {
	existing := encodeFile(t, sampleRow("2024-06-10", "Cầu Gỗ"))
	remote := &fakeRemote{content: existing, sha: "abc123"}
	store := NewStore(remote)

	err := store.Append(context.Background(), sampleRow("2024-06-12", "Mây"))
	require.NoError(t, err)

	assert.Equal(t, "abc123", remote.putSHA)
	_, rows, err := csvcodec.Decode(remote.content)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Mây", rows[1]["venue"])
}

func TestAppendSurfacesVersionConflict(t *testing.T) {
	remote := &fakeRemote{content: encodeFile(t, sampleRow("2024-06-10", "Cầu Gỗ")), sha: "abc", putErr: github.ErrVersionConflict}
	store := NewStore(remote)

	err := store.Append(context.Background(), sampleRow("2024-06-12", "Mây"))
	assert.ErrorIs(t, err, github.ErrVersionConflict)
}

func TestUpdateUsesPreferredIndexFastPath(t *testing.T) {
	target := sampleRow("2024-06-12", "Mây")
	remote := &fakeRemote{content: encodeFile(t, sampleRow("2024-06-10", "Cầu Gỗ"), target, sampleRow("2024-06-14", "Tranquil")), sha: "v1"}
	store := NewStore(remote)

	updated := sampleRow("2024-06-12", "Mây (tầng 2)")
	hint := 1
	found, err := store.Update(context.Background(), target, updated, &hint)
	require.NoError(t, err)
	assert.True(t, found)

	_, rows, err := csvcodec.Decode(remote.content)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Mây (tầng 2)", rows[1]["venue"])
}

func TestUpdateFallsBackToNewestMatch(t *testing.T) {
	dup := sampleRow("2024-06-12", "Mây")
	remote := &fakeRemote{content: encodeFile(t, dup, sampleRow("2024-06-13", "Cầu Gỗ"), dup), sha: "v1"}
	store := NewStore(remote)

	// Stale hint pointing at a non-matching row: the scan must resolve to the
	// newest duplicate, index 2.
	hint := 1
	found, err := store.Update(context.Background(), dup, sampleRow("2024-06-12", "Mây mới"), &hint)
	require.NoError(t, err)
	assert.True(t, found)

	_, rows, err := csvcodec.Decode(remote.content)
	require.NoError(t, err)
	assert.Equal(t, "Mây", rows[0]["venue"])
	assert.Equal(t, "Mây mới", rows[2]["venue"])
}

func TestUpdateNoMatchPerformsNoWrite(t *testing.T) {
	remote := &fakeRemote{content: encodeFile(t, sampleRow("2024-06-10", "Cầu Gỗ")), sha: "v1"}
	store := NewStore(remote)

	found, err := store.Update(context.Background(), sampleRow("2099-01-01", "nowhere"), sampleRow("2099-01-01", "x"), nil)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, remote.putCount)
}

func TestDeleteRemovesNewestMatch(t *testing.T) {
	target := sampleRow("2024-06-12", "Mây")
	remote := &fakeRemote{content: encodeFile(t, sampleRow("2024-06-10", "Cầu Gỗ"), target), sha: "v1"}
	store := NewStore(remote)

	found, err := store.Delete(context.Background(), target, nil)
	require.NoError(t, err)
	assert.True(t, found)

	_, rows, err := csvcodec.Decode(remote.content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cầu Gỗ", rows[0]["venue"])
}

func TestDeleteNoMatchPerformsNoWrite(t *testing.T) {
	remote := &fakeRemote{content: encodeFile(t, sampleRow("2024-06-10", "Cầu Gỗ")), sha: "v1"}
	store := NewStore(remote)

	found, err := store.Delete(context.Background(), sampleRow("2099-01-01", "nowhere"), nil)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, remote.putCount)
}

func TestDeleteMissingFile(t *testing.T) {
	store := NewStore(&fakeRemote{missing: true})
	found, err := store.Delete(context.Background(), sampleRow("2024-06-12", "Mây"), nil)
	require.NoError(t, err)
	assert.False(t, found)
}
