package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

var base36Len = big.NewInt(int64(len(base36)))

// RandomBase36 returns n lowercase base36 characters drawn from crypto/rand.
func RandomBase36(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, base36Len)
		if err != nil {
			return "", err
		}
		b.WriteByte(base36[idx.Int64()])
	}
	return b.String(), nil
}

// RandomCode is RandomBase36 upper-cased with an optional prefix, e.g. "PTH-" + "Q1W2E3R4".
func RandomCode(prefix string, n int) (string, error) {
	s, err := RandomBase36(n)
	if err != nil {
		return "", err
	}
	return prefix + strings.ToUpper(s), nil
}
