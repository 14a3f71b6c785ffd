// Package wallet verifies Ethereum personal_sign (EIP-191) signatures.
package wallet

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"
)

var (
	ErrInvalidAddress    = errors.New("invalid wallet address")
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrSignatureMismatch = errors.New("signature does not match wallet address")
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-f]{40}$`)

// NormalizeAddress lower-cases a 0x-prefixed hex address and checks its shape.
func NormalizeAddress(addr string) (string, error) {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if !addressPattern.MatchString(addr) {
		return "", ErrInvalidAddress
	}
	return addr, nil
}

func NewNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// SignInMessage is the exact text the wallet is asked to sign.
func SignInMessage(address, nonce string, issuedAt time.Time) string {
	return fmt.Sprintf("Sign in to Kinnected\n\nWallet: %s\nNonce: %s\nIssued At: %s",
		address, nonce, issuedAt.UTC().Format(time.RFC3339))
}

func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// PersonalMessageHash applies the EIP-191 "\x19Ethereum Signed Message" prefix.
func PersonalMessageHash(msg string) []byte {
	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(msg))
	return Keccak256([]byte(prefix), []byte(msg))
}

// RecoverAddress returns the lower-case address that produced a 65-byte
// [R || S || V] signature over msg. V may be 0/1 or 27/28.
func RecoverAddress(msg, signatureHex string) (string, error) {
	sig, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(signatureHex), "0x"))
	if err != nil || len(sig) != 65 {
		return "", ErrInvalidSignature
	}

	v := sig[64]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return "", ErrInvalidSignature
	}

	// secp256k1 compact form is [27+recid || R || S] for uncompressed keys.
	compact := make([]byte, 65)
	compact[0] = 27 + v
	copy(compact[1:], sig[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, PersonalMessageHash(msg))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	uncompressed := pub.SerializeUncompressed()
	return "0x" + hex.EncodeToString(Keccak256(uncompressed[1:])[12:]), nil
}

// Verify checks that signatureHex over msg was produced by address.
func Verify(address, msg, signatureHex string) error {
	want, err := NormalizeAddress(address)
	if err != nil {
		return err
	}
	got, err := RecoverAddress(msg, signatureHex)
	if err != nil {
		return err
	}
	if got != want {
		return ErrSignatureMismatch
	}
	return nil
}
