package encryption

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fitfocus/internal/config"
)

func newTestAgeEncryptor(t *testing.T) *AgeEncryptor {
	t.Helper()
	dir := t.TempDir()
	return NewAgeEncryptor(config.EncryptionConfig{
		PublicKeyPath:  filepath.Join(dir, "keys", "fitfocus.pub"),
		PrivateKeyPath: filepath.Join(dir, "keys", "fitfocus.key"),
	})
}

func TestAgeEncryptor_Setup(t *testing.T) {
	t.Parallel()
	e := newTestAgeEncryptor(t)

	if e.IsConfigured() {
		t.Fatal("IsConfigured() = true before Setup, want false")
	}
	if err := e.Setup("test-passphrase"); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if !e.IsConfigured() {
		t.Error("IsConfigured() = false after Setup, want true")
	}

	info, err := os.Stat(e.privateKeyPath)
	if err != nil {
		t.Fatalf("stat private key: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("private key mode = %o, want 600", perm)
	}

	priv, err := os.ReadFile(e.privateKeyPath)
	if err != nil {
		t.Fatalf("read private key: %v", err)
	}
	if bytes.Contains(priv, []byte("AGE-SECRET-KEY-")) {
		t.Error("private key file contains the unencrypted identity")
	}
}

func TestAgeEncryptor_SetupRefusesOverwrite(t *testing.T) {
	t.Parallel()
	e := newTestAgeEncryptor(t)

	if err := e.Setup("first"); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	pub, _ := os.ReadFile(e.publicKeyPath)

	if err := e.Setup("second"); !errors.Is(err, ErrKeysExist) {
		t.Fatalf("second Setup() error = %v, want ErrKeysExist", err)
	}
	after, _ := os.ReadFile(e.publicKeyPath)
	if !bytes.Equal(pub, after) {
		t.Error("public key changed after refused Setup")
	}
}

func TestAgeEncryptor_EncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	passphrase := "test-passphrase"
	e := newTestAgeEncryptor(t)
	if err := e.Setup(passphrase); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "goals document", input: []byte(`{"intermediate":{"weightLbs":170}}`)},
		{name: "empty", input: []byte{}},
		{name: "large history", input: bytes.Repeat([]byte(`{"weightLbs":180.5},`), 5000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var encrypted bytes.Buffer
			if err := e.Encrypt(bytes.NewReader(tt.input), &encrypted); err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}
			if len(tt.input) > 0 && bytes.Contains(encrypted.Bytes(), tt.input) {
				t.Error("ciphertext contains the plaintext")
			}

			dec, err := e.Unlock(passphrase)
			if err != nil {
				t.Fatalf("Unlock() error = %v", err)
			}

			var decrypted bytes.Buffer
			if err := dec.Decrypt(bytes.NewReader(encrypted.Bytes()), &decrypted); err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}
			if !bytes.Equal(decrypted.Bytes(), tt.input) {
				t.Errorf("round-trip failed: got %d bytes, want %d bytes", decrypted.Len(), len(tt.input))
			}
		})
	}
}

func TestAgeEncryptor_UnlockWrongPassphrase(t *testing.T) {
	t.Parallel()

	e := newTestAgeEncryptor(t)
	if err := e.Setup("correct-passphrase"); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	if _, err := e.Unlock("wrong-passphrase"); err == nil {
		t.Error("Unlock() with wrong passphrase should return error")
	}
}

func TestAgeEncryptor_ChangePassphrase(t *testing.T) {
	t.Parallel()

	e := newTestAgeEncryptor(t)
	if err := e.Setup("old"); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	var encrypted bytes.Buffer
	if err := e.Encrypt(bytes.NewReader([]byte("kept")), &encrypted); err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	if err := e.ChangePassphrase("wrong", "new"); err == nil {
		t.Fatal("ChangePassphrase() with wrong old passphrase should return error")
	}
	if err := e.ChangePassphrase("old", "new"); err != nil {
		t.Fatalf("ChangePassphrase() error = %v", err)
	}

	if _, err := e.Unlock("old"); err == nil {
		t.Error("Unlock() with the old passphrase should fail after change")
	}
	dec, err := e.Unlock("new")
	if err != nil {
		t.Fatalf("Unlock() with new passphrase error = %v", err)
	}

	var decrypted bytes.Buffer
	if err := dec.Decrypt(bytes.NewReader(encrypted.Bytes()), &decrypted); err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if decrypted.String() != "kept" {
		t.Errorf("Decrypt() = %q, want %q", decrypted.String(), "kept")
	}
}

func TestAgeEncryptor_BeforeSetup(t *testing.T) {
	t.Parallel()

	e := newTestAgeEncryptor(t)

	var buf bytes.Buffer
	if err := e.Encrypt(bytes.NewReader([]byte("data")), &buf); err == nil {
		t.Error("Encrypt() before Setup should return error")
	}
	if _, err := e.Unlock("passphrase"); err == nil {
		t.Error("Unlock() before Setup should return error")
	}
}
