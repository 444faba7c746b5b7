package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// RandomOTPCode returns a uniformly random 6-digit code in the
// range 100000-999999 inclusive (never zero-padded).
func RandomOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
