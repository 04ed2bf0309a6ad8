package keyring

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeyev/worklog/internal/crypto"
)

func newTestKeyring(t *testing.T) *Keyring {
	t.Helper()

	k, err := Open(filepath.Join(t.TempDir(), "keyring.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = k.Close() })

	return k
}

func TestPutGetDelete(t *testing.T) {
	k := newTestKeyring(t)

	_, err := k.Get(NoteKey)
	assert.ErrorIs(t, err, ErrSecretNotFound)

	require.NoError(t, k.Put(NoteKey, []byte("secret-bytes")))

	value, err := k.Get(NoteKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret-bytes"), value)

	require.NoError(t, k.Delete(NoteKey))
	_, err = k.Get(NoteKey)
	assert.ErrorIs(t, err, ErrSecretNotFound)

	// Повторное удаление не ошибка
	assert.NoError(t, k.Delete(NoteKey))
}

func TestGetOrCreate(t *testing.T) {
	k := newTestKeyring(t)

	first, err := k.GetOrCreate(NoteKey)
	require.NoError(t, err)
	assert.Len(t, first, crypto.KeySize)

	// Повторный вызов возвращает тот же ключ
	second, err := k.GetOrCreate(NoteKey)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Разные имена - независимые секреты
	other, err := k.GetOrCreate(TokenSecret)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestKeyringPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyring.db")

	k, err := Open(path)
	require.NoError(t, err)
	created, err := k.GetOrCreate(NoteKey)
	require.NoError(t, err)
	require.NoError(t, k.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Get(NoteKey)
	require.NoError(t, err)
	assert.Equal(t, created, loaded)
}
