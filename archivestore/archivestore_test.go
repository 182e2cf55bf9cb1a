package archivestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_PutGetDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "archives.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("alice", []byte("blob-a")))
	require.NoError(t, s.Put("bob", []byte("blob-b")))

	v, err := s.Get("alice")
	require.NoError(t, err)
	require.Equal(t, []byte("blob-a"), v)

	names, err := s.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob"}, names)

	require.NoError(t, s.Delete("alice"))
	v, err = s.Get("alice")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestStore_GetMissing(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "archives.db"))
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get("nobody")
	require.NoError(t, err)
	require.Nil(t, v)
}
