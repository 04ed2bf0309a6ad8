// Package keyring хранит локальные секреты (ключ шифрования заметок,
// секрет подписи сессионного токена) в отдельном bbolt-файле рядом с БД.
package keyring

import (
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/avdeyev/worklog/internal/crypto"
)

// Secret names.
const (
	// NoteKey - симметричный ключ шифрования заметок
	NoteKey = "note_key"
	// TokenSecret - секрет подписи сессионного токена
	TokenSecret = "token_secret"
)

var bucketSecrets = []byte("secrets")

// ErrSecretNotFound indicates that the named secret is absent
var ErrSecretNotFound = errors.New("secret not found")

// Keyring represents the bbolt-backed secret store
type Keyring struct {
	db *bbolt.DB
}

// Open opens (creating if needed) the keyring file at path.
func Open(path string) (*Keyring, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSecrets)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize keyring bucket: %w", err)
	}

	return &Keyring{db: db}, nil
}

// Close closes the keyring file.
func (k *Keyring) Close() error {
	if k.db == nil {
		return nil
	}
	return k.db.Close()
}

// Get returns the named secret or ErrSecretNotFound.
func (k *Keyring) Get(name string) ([]byte, error) {
	var value []byte

	err := k.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSecrets).Get([]byte(name))
		if data == nil {
			return ErrSecretNotFound
		}
		// Копируем: данные bbolt валидны только внутри транзакции
		value = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Put stores the named secret.
func (k *Keyring) Put(name string, value []byte) error {
	return k.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketSecrets).Put([]byte(name), value); err != nil {
			return fmt.Errorf("failed to save secret: %w", err)
		}
		return nil
	})
}

// Delete removes the named secret. Deleting an absent secret is not an error.
func (k *Keyring) Delete(name string) error {
	return k.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketSecrets).Delete([]byte(name)); err != nil {
			return fmt.Errorf("failed to delete secret: %w", err)
		}
		return nil
	})
}

// GetOrCreate returns the named secret, generating and persisting a fresh
// random 32-byte key when it does not exist yet.
func (k *Keyring) GetOrCreate(name string) ([]byte, error) {
	value, err := k.Get(name)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, ErrSecretNotFound) {
		return nil, err
	}

	value, err = crypto.NewKey()
	if err != nil {
		return nil, err
	}

	if err := k.Put(name, value); err != nil {
		return nil, err
	}

	return value, nil
}
