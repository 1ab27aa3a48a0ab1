package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settled-dev/settled/internal/model"
)

func TestAppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rejections.csv")

	ts := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	entries := []Entry{
		{Timestamp: ts, Kind: model.KindWithdrawal, Client: 1, Tx: 7, Reason: "insufficient_funds"},
		{Timestamp: ts, Kind: model.KindDispute, Client: 2, Tx: 9, Reason: "unknown_tx"},
	}
	require.NoError(t, Append(path, entries))

	// Header written once, appends accumulate.
	require.NoError(t, Append(path, entries[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, Header, lines[0])

	got, err := Read(path)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, entries[0], got[0])
	assert.Equal(t, entries[1], got[1])
	assert.Equal(t, entries[0], got[2])
}

func TestRead_Missing(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAppend_CreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rejections.csv")
	err := Append(path, []Entry{{
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Kind:      model.KindDeposit,
		Client:    1,
		Tx:        1,
		Reason:    "duplicate_tx",
	}})
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
}
