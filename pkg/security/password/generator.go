package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Alphabet is the character set random passwords are drawn from.
const Alphabet = "ABCDEFGHJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*?_-"

// MinLength is the shortest password Generate returns. The longest is len(Alphabet).
const MinLength = 8

// Generator draws passwords from crypto/rand.
type Generator struct{}

func NewGenerator() Generator { return Generator{} }

// Generate picks a length uniformly in [MinLength, len(Alphabet)] and fills it
// with independently sampled Alphabet characters (repeats allowed).
func (Generator) Generate() (string, error) {
	span := int64(len(Alphabet) - MinLength + 1)
	n, err := randInt(span)
	if err != nil {
		return "", err
	}
	size := MinLength + int(n)

	out := make([]byte, size)
	for i := range out {
		idx, err := randInt(int64(len(Alphabet)))
		if err != nil {
			return "", err
		}
		out[i] = Alphabet[idx]
	}
	return string(out), nil
}

func randInt(max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, fmt.Errorf("random password: %w", err)
	}
	return n.Int64(), nil
}
