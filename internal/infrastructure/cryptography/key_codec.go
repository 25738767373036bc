package cryptography

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
)

// WritePublicKey writes n, e and s as hexadecimal lines followed by the identity line.
func WritePublicKey(w io.Writer, key *keys.PublicKey) error {
	if err := key.Validate(); err != nil {
		return fmt.Errorf("invalid public key: %w", err)
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n%s\n", key.N.Text(16), key.E.Text(16), key.S.Text(16), key.Identity)
	if err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}
	return nil
}

// ReadPublicKey parses the format written by WritePublicKey.
func ReadPublicKey(r io.Reader) (*keys.PublicKey, error) {
	lines, err := readKeyLines(r, 4)
	if err != nil {
		return nil, err
	}

	key := &keys.PublicKey{Identity: lines[3]}
	if key.N, err = parseModulus(lines[0]); err != nil {
		return nil, err
	}
	if key.E, err = parseHex("e", lines[1]); err != nil {
		return nil, err
	}
	if key.S, err = parseHex("s", lines[2]); err != nil {
		return nil, err
	}
	if key.Identity == "" {
		return nil, fmt.Errorf("%w: missing identity", keys.ErrMalformedKey)
	}
	return key, nil
}

// WritePrivateKey writes n and d as hexadecimal lines.
func WritePrivateKey(w io.Writer, key *keys.PrivateKey) error {
	if err := key.Validate(); err != nil {
		return fmt.Errorf("invalid private key: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n", key.N.Text(16), key.D.Text(16)); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}
	return nil
}

// ReadPrivateKey parses the format written by WritePrivateKey.
func ReadPrivateKey(r io.Reader) (*keys.PrivateKey, error) {
	lines, err := readKeyLines(r, 2)
	if err != nil {
		return nil, err
	}

	key := &keys.PrivateKey{}
	if key.N, err = parseModulus(lines[0]); err != nil {
		return nil, err
	}
	if key.D, err = parseHex("d", lines[1]); err != nil {
		return nil, err
	}
	return key, nil
}

func readKeyLines(r io.Reader, count int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	lines := make([]string, 0, count)
	for len(lines) < count && scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}
	if len(lines) < count {
		return nil, fmt.Errorf("%w: expected %d lines, found %d", keys.ErrMalformedKey, count, len(lines))
	}
	return lines, nil
}

func parseHex(field, value string) (*big.Int, error) {
	if value == "" {
		return nil, fmt.Errorf("%w: missing %s", keys.ErrMalformedKey, field)
	}
	v, ok := new(big.Int).SetString(value, 16)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s is not a hexadecimal integer", keys.ErrMalformedKey, field)
	}
	return v, nil
}

func parseModulus(value string) (*big.Int, error) {
	n, err := parseHex("n", value)
	if err != nil {
		return nil, err
	}
	if n.Cmp(bigOne) <= 0 {
		return nil, fmt.Errorf("%w: modulus must be greater than 1", keys.ErrMalformedKey)
	}
	return n, nil
}
