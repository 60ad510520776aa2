// Package cardnumber handles card number (PAN) encryption, masking and
// generation. Encryption is deliberately deterministic: the ciphertext is
// stored as the uniqueness column and doubles as the lookup key for
// resolving a card by its number without ever persisting the clear PAN.
package cardnumber

import (
	"crypto/aes"
	"encoding/base64"
	"fmt"

	"bankcards/internal/errs"
)

const (
	// BIN is the issuer prefix of every generated card number.
	BIN = "427701"
	// PANLength is the full card number length in digits.
	PANLength = 16
)

// Codec encrypts card numbers with a fixed process-wide key. AES in ECB
// mode with PKCS#5 padding, emitted as base64 text, so equal PANs always
// produce equal ciphertexts.
type Codec struct {
	key []byte
}

// NewCodec creates a codec from raw key material. The key must be a valid
// AES key length (16, 24 or 32 bytes).
func NewCodec(key []byte) (*Codec, error) {
	if _, err := aes.NewCipher(key); err != nil {
		return nil, fmt.Errorf("invalid card encryption key: %w", err)
	}
	return &Codec{key: key}, nil
}

// Encrypt returns the deterministic ciphertext for a card number.
func (c *Codec) Encrypt(pan string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", errs.Internal("Failed to encrypt card number")
	}

	plain := pkcs5Pad([]byte(pan), block.BlockSize())
	encrypted := make([]byte, len(plain))
	for i := 0; i < len(plain); i += block.BlockSize() {
		block.Encrypt(encrypted[i:i+block.BlockSize()], plain[i:i+block.BlockSize()])
	}
	return base64.StdEncoding.EncodeToString(encrypted), nil
}

// Mask returns the display form of a card number, exposing only the last
// four digits.
func Mask(pan string) (string, error) {
	if len(pan) != PANLength {
		return "", errs.InvalidArgument("Card number must be 16 digits")
	}
	return "**** **** **** " + pan[12:], nil
}

func pkcs5Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padding)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padding)
	}
	return padded
}
