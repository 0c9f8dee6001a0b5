// Command hash-generator prints a bcrypt hash for the owner password, ready to
// be set as FOLIO_AUTH_OWNER_PASSWORD_HASH.
//
// The password is read from the first line of stdin so it never appears in
// shell history:
//
//	printf '%s' "$PASSWORD" | go run ./cmd/hash-generator
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/folioworks/folio-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// minPasswordLength is enforced here only; login accepts whatever the hash matches.
const minPasswordLength = 12

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	hash, err := generate(os.Stdin, *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash-generator: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s=%s\n", config.EnvVar("auth.owner_password_hash"), hash)
}

// generate hashes the first line of r.
func generate(r io.Reader, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", fmt.Errorf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if len(password) > 72 {
		return "", errors.New("password must be at most 72 bytes")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
