package store

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"fitfocus/internal/fitfocus"
)

// UnlockFunc produces the decryption context on first read. It is typically
// backed by a passphrase prompt.
type UnlockFunc func() (fitfocus.DecryptionContext, error)

// EncryptedStore encrypts every value before handing it to the wrapped store
// and decrypts on the way out. Writes only need the public key, so a run that
// never reads stored data never asks for the passphrase.
type EncryptedStore struct {
	inner     fitfocus.Store
	encryptor fitfocus.Encryptor
	unlock    UnlockFunc

	mu  sync.Mutex
	dec fitfocus.DecryptionContext
}

// NewEncryptedStore wraps inner.
func NewEncryptedStore(inner fitfocus.Store, encryptor fitfocus.Encryptor, unlock UnlockFunc) *EncryptedStore {
	return &EncryptedStore{inner: inner, encryptor: encryptor, unlock: unlock}
}

func (e *EncryptedStore) decrypter() (fitfocus.DecryptionContext, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dec != nil {
		return e.dec, nil
	}
	dec, err := e.unlock()
	if err != nil {
		return nil, fmt.Errorf("unlocking private key: %w", err)
	}
	e.dec = dec
	return dec, nil
}

// Load reads and decrypts the value stored under ns.
func (e *EncryptedStore) Load(ctx context.Context, ns fitfocus.Namespace) ([]byte, error) {
	ciphertext, err := e.inner.Load(ctx, ns)
	if err != nil {
		return nil, err
	}

	dec, err := e.decrypter()
	if err != nil {
		return nil, err
	}

	var plaintext bytes.Buffer
	if err := dec.Decrypt(bytes.NewReader(ciphertext), &plaintext); err != nil {
		return nil, fmt.Errorf("decrypting %s: %w", ns, err)
	}
	return plaintext.Bytes(), nil
}

// Save encrypts data and stores the ciphertext under ns.
func (e *EncryptedStore) Save(ctx context.Context, ns fitfocus.Namespace, data []byte) error {
	var ciphertext bytes.Buffer
	if err := e.encryptor.Encrypt(bytes.NewReader(data), &ciphertext); err != nil {
		return fmt.Errorf("encrypting %s: %w", ns, err)
	}
	return e.inner.Save(ctx, ns, ciphertext.Bytes())
}

// Close closes the wrapped store.
func (e *EncryptedStore) Close() error {
	return e.inner.Close()
}

var _ fitfocus.Store = (*EncryptedStore)(nil)
