package app

import (
	"errors"
	"fmt"

	"fitfocus/internal/config"
	"fitfocus/internal/encryption"
)

// passphraseChanger is implemented by encryptors whose private key can be re-sealed.
type passphraseChanger interface {
	ChangePassphrase(oldPassphrase, newPassphrase string) error
}

// SetupKeys generates the key pair configured in cfg.Encryption.
func SetupKeys(cfg *config.Config, passphrase string) error {
	if passphrase == "" {
		return errors.New("passphrase must not be empty")
	}
	enc, err := encryption.NewEncryptorFromConfig(cfg.WithDefaults().Encryption)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}
	if err := enc.Setup(passphrase); err != nil {
		return fmt.Errorf("setting up keys: %w", err)
	}
	return nil
}

// ChangePassphrase re-seals the private key under a new passphrase.
func ChangePassphrase(cfg *config.Config, oldPassphrase, newPassphrase string) error {
	if newPassphrase == "" {
		return errors.New("passphrase must not be empty")
	}
	enc, err := encryption.NewEncryptorFromConfig(cfg.WithDefaults().Encryption)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}
	c, ok := enc.(passphraseChanger)
	if !ok {
		return fmt.Errorf("encryption type %q cannot change passphrase", cfg.Encryption.Type)
	}
	if err := c.ChangePassphrase(oldPassphrase, newPassphrase); err != nil {
		return fmt.Errorf("changing passphrase: %w", err)
	}
	return nil
}
