package utils

import (
	"crypto/rand"
	"math/big"
)

// RandomChoice returns a uniformly chosen element of options.
func RandomChoice(options []string) string {
	if len(options) == 0 {
		return ""
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(options))))
	if err != nil {
		return options[0]
	}
	return options[n.Int64()]
}
