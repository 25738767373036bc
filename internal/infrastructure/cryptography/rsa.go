package cryptography

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/numtheory"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/randstate"
)

// SentinelByte prefixes every plaintext chunk so leading zero bytes survive integer conversion
const SentinelByte = 0xFF

// MinModulusBits is the smallest requested modulus size accepted by MakePub
const MinModulusBits = 32

var (
	// ErrNotInvertible signals that e has no inverse modulo the totient.
	ErrNotInvertible = errors.New("public exponent is not invertible modulo the totient")

	// ErrModulusTooSmall signals a modulus that cannot hold a sentinel byte plus one data byte.
	ErrModulusTooSmall = errors.New("modulus too small to carry a message block")

	// ErrModulusBits signals a requested modulus size below MinModulusBits.
	ErrModulusBits = fmt.Errorf("modulus must be at least %d bits", MinModulusBits)
)

var bigOne = big.NewInt(1)

// maxCiphertextToken bounds a single hexadecimal token read by DecryptStream
var maxCiphertextToken = 16 * 1024 * 1024

// MakePub generates the primes p and q, the modulus n = p*q and a public exponent e
// coprime with (p-1)(q-1). The bits of n are split unevenly between p and q.
// maxAttempts bounds every retry loop; zero retries without bound.
func MakePub(rng randstate.Source, nbits, iters uint, maxAttempts int) (p, q, n, e *big.Int, err error) {
	if nbits < MinModulusBits {
		return nil, nil, nil, nil, ErrModulusBits
	}

	bitP := nbits/4 + uint(rng.Intn(int(nbits/2)))
	bitQ := nbits - bitP

	p, err = numtheory.MakePrime(rng, bitP, iters, maxAttempts)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to generate prime p: %w", err)
	}
	for attempt := 1; ; attempt++ {
		q, err = numtheory.MakePrime(rng, bitQ, iters, maxAttempts)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to generate prime q: %w", err)
		}
		if p.Cmp(q) != 0 {
			break
		}
		if maxAttempts > 0 && attempt >= maxAttempts {
			return nil, nil, nil, nil, fmt.Errorf("failed to generate distinct primes: %w", numtheory.ErrAttemptsExhausted)
		}
	}

	n = new(big.Int).Mul(p, q)
	totient := totient(p, q)

	for attempt := 1; maxAttempts == 0 || attempt <= maxAttempts; attempt++ {
		candidate := rng.Bits(nbits)
		if candidate.Cmp(bigOne) <= 0 {
			continue
		}
		if numtheory.GCD(candidate, totient).Cmp(bigOne) == 0 {
			return p, q, n, candidate, nil
		}
	}
	return nil, nil, nil, nil, fmt.Errorf("failed to find public exponent: %w", numtheory.ErrAttemptsExhausted)
}

// MakePriv derives the private exponent d = e^-1 mod (p-1)(q-1).
func MakePriv(e, p, q *big.Int) (*big.Int, error) {
	d, ok := numtheory.ModInverse(e, totient(p, q))
	if !ok {
		return nil, ErrNotInvertible
	}
	return d, nil
}

// GenerateKeyPair runs a complete key generation from a fresh random engine seeded with seed.
func GenerateKeyPair(bits, iters uint, seed uint64) (*keys.KeyPair, error) {
	rng := randstate.New(seed)
	defer func() { _ = rng.Close() }()
	return generateKeyPair(rng, bits, iters, 0)
}

func generateKeyPair(rng randstate.Source, bits, iters uint, maxAttempts int) (*keys.KeyPair, error) {
	p, q, n, e, err := MakePub(rng, bits, iters, maxAttempts)
	if err != nil {
		return nil, err
	}
	d, err := MakePriv(e, p, q)
	if err != nil {
		return nil, fmt.Errorf("internal invariant violated: %w", err)
	}
	return &keys.KeyPair{P: p, Q: q, N: n, E: e, D: d}, nil
}

func totient(p, q *big.Int) *big.Int {
	pMinusOne := new(big.Int).Sub(p, bigOne)
	qMinusOne := new(big.Int).Sub(q, bigOne)
	return pMinusOne.Mul(pMinusOne, qMinusOne)
}

// Encrypt returns m^e mod n.
func Encrypt(m, e, n *big.Int) *big.Int {
	return numtheory.PowMod(m, e, n)
}

// Decrypt returns c^d mod n.
func Decrypt(c, d, n *big.Int) *big.Int {
	return numtheory.PowMod(c, d, n)
}

// Sign returns m^d mod n.
func Sign(m, d, n *big.Int) *big.Int {
	return numtheory.PowMod(m, d, n)
}

// Verify reports whether s^e mod n equals m.
func Verify(m, s, e, n *big.Int) bool {
	if n.Sign() <= 0 {
		return false
	}
	return numtheory.PowMod(s, e, n).Cmp(m) == 0
}

// BlockSize returns k, the number of bytes a block of modulus n can hold including the sentinel.
func BlockSize(n *big.Int) (int, error) {
	if n.Sign() <= 0 {
		return 0, ErrModulusTooSmall
	}
	k := (n.BitLen() - 1) / 8
	if k < 2 {
		return 0, ErrModulusTooSmall
	}
	return k, nil
}

// EncryptStream encrypts r block by block and writes one hexadecimal ciphertext per line to w.
// Each block is the sentinel byte followed by up to k-1 bytes of input.
func EncryptStream(r io.Reader, w io.Writer, n, e *big.Int) error {
	k, err := BlockSize(n)
	if err != nil {
		return err
	}

	block := make([]byte, k)
	block[0] = SentinelByte
	bw := bufio.NewWriter(w)
	m := new(big.Int)

	for {
		read, readErr := io.ReadFull(r, block[1:])
		if read > 0 {
			m.SetBytes(block[:read+1])
			c := Encrypt(m, e, n)
			if _, err := bw.WriteString(c.Text(16) + "\n"); err != nil {
				return fmt.Errorf("failed to write ciphertext block: %w", err)
			}
		}
		if readErr == io.EOF || errors.Is(readErr, io.ErrUnexpectedEOF) {
			break
		}
		if readErr != nil {
			return fmt.Errorf("failed to read plaintext: %w", readErr)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush ciphertext: %w", err)
	}
	return nil
}

// DecryptStream reads hexadecimal ciphertexts from r, decrypts each one and writes the
// block bytes after the sentinel to w. Reading stops at end of input or at the first
// token that is not a hexadecimal integer or exceeds maxCiphertextToken bytes.
func DecryptStream(r io.Reader, w io.Writer, n, d *big.Int) error {
	if _, err := BlockSize(n); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, maxCiphertextToken)), maxCiphertextToken)
	scanner.Split(bufio.ScanWords)
	bw := bufio.NewWriter(w)
	c := new(big.Int)

	for scanner.Scan() {
		if _, ok := c.SetString(scanner.Text(), 16); !ok {
			break
		}
		plain := Decrypt(c, d, n).Bytes()
		if len(plain) < 2 {
			continue
		}
		if _, err := bw.Write(plain[1:]); err != nil {
			return fmt.Errorf("failed to write plaintext block: %w", err)
		}
	}
	// an oversized token is truncated input and ends the stream like any other bad token
	if err := scanner.Err(); err != nil && !errors.Is(err, bufio.ErrTooLong) {
		return fmt.Errorf("failed to read ciphertext: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush plaintext: %w", err)
	}
	return nil
}
