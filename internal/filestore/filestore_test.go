package filestore_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilptr/microemu/internal/filestore"
)

func newStore(t *testing.T) *filestore.Store {
	t.Helper()
	s, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Write("hello.txt", []byte("hi there")))

	data, err := s.Read("hello.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi there", string(data))
}

func TestWriteRescansSoListAndFindSeeTheNewFile(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Write("a.txt", []byte("x")))

	entries := s.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "a.txt", entries[0].Name)
	assert.Equal(t, int64(1), entries[0].Size)

	_, ok := s.Find("a.txt")
	assert.True(t, ok)
	_, ok = s.Find("missing.txt")
	assert.False(t, ok)
}

func TestDeleteRemovesFileAndEntry(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Write("gone.txt", []byte("bye")))

	require.NoError(t, s.Delete("gone.txt"))

	_, ok := s.Find("gone.txt")
	assert.False(t, ok)
	_, err := s.Read("gone.txt")
	assert.Error(t, err)
}

func TestRenameMovesEntryToNewName(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Write("old.txt", []byte("content")))

	require.NoError(t, s.Rename("old.txt", "new.txt"))

	_, ok := s.Find("old.txt")
	assert.False(t, ok)
	data, err := s.Read("new.txt")
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestRejectsNameWithPathComponents(t *testing.T) {
	s := newStore(t)

	err := s.Write("../escape.txt", []byte("x"))

	assert.Error(t, err)
}

func TestRejectsNonASCIIName(t *testing.T) {
	s := newStore(t)

	err := s.Write("caf\xe9.txt", []byte("x"))

	assert.Error(t, err)
}

func TestRejectsNameLongerThan63Bytes(t *testing.T) {
	s := newStore(t)
	name := strings.Repeat("a", 64)

	err := s.Write(name, []byte("x"))

	assert.Error(t, err)
}

func TestRejectsEmptyName(t *testing.T) {
	s := newStore(t)

	err := s.Write("", []byte("x"))

	assert.Error(t, err)
}

func TestScanCapsAtMaxEntries(t *testing.T) {
	s := newStore(t)
	for i := 0; i < 70; i++ {
		require.NoError(t, s.Write(nameFor(i), []byte("x")))
	}

	entries := s.List()
	assert.LessOrEqual(t, len(entries), 64)
}

func TestListIsSortedByName(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Write("zeta.txt", []byte("x")))
	require.NoError(t, s.Write("alpha.txt", []byte("x")))
	require.NoError(t, s.Write("mid.txt", []byte("x")))

	entries := s.List()
	require.Len(t, entries, 3)
	assert.Equal(t, "alpha.txt", entries[0].Name)
	assert.Equal(t, "mid.txt", entries[1].Name)
	assert.Equal(t, "zeta.txt", entries[2].Name)
}

func nameFor(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	return "f" + string(letters[i%26]) + string(letters[(i/26)%26]) + ".txt"
}
