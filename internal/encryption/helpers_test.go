package encryption

import (
	"fmt"

	"fitfocus/internal/config"
)

func configFor(typ string, withPaths bool) config.EncryptionConfig {
	cfg := config.EncryptionConfig{Type: typ}
	if withPaths {
		cfg.PublicKeyPath = "/keys/fitfocus.pub"
		cfg.PrivateKeyPath = "/keys/fitfocus.key"
	}
	return cfg
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
