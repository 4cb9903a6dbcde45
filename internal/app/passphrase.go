package app

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// PassphraseEnv, when set, is used instead of prompting.
const PassphraseEnv = "FITFOCUS_PASSPHRASE"

// ReadPassphrase returns FITFOCUS_PASSPHRASE or prompts on the terminal
// without echo.
func ReadPassphrase(prompt string) (string, error) {
	if p := os.Getenv(PassphraseEnv); p != "" {
		return p, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal: set %s", PassphraseEnv)
	}

	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(b), nil
}

// ReadNewPassphrase prompts twice and checks both entries match.
func ReadNewPassphrase(prompt string) (string, error) {
	if p := os.Getenv(PassphraseEnv); p != "" {
		return p, nil
	}
	first, err := ReadPassphrase(prompt)
	if err != nil {
		return "", err
	}
	second, err := ReadPassphrase("Repeat: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("passphrases do not match")
	}
	return first, nil
}
