// Package otp generates and stores the short-lived numeric codes used for
// email verification.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateNumeric returns n random decimal digits, zero-padded so the code
// always has exactly n characters. n <= 0 falls back to 6.
func GenerateNumeric(n int) (string, error) {
	if n <= 0 {
		n = 6
	}
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	num, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	format := fmt.Sprintf("%%0%dd", n)
	return fmt.Sprintf(format, num.Int64()), nil
}
