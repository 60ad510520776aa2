package cardnumber

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// GeneratePAN produces a fresh 16 digit card number: the fixed BIN
// followed by cryptographically random decimal digits. Uniqueness against
// stored cards is the caller's responsibility.
func GeneratePAN() (string, error) {
	var sb strings.Builder
	sb.WriteString(BIN)
	for i := 0; i < PANLength-len(BIN); i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate card number: %w", err)
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String(), nil
}
