// Package password generates the temporary credentials handed to a
// driving school owner at the end of registration.
package password

import (
	"crypto/rand"
	"math/big"
)

const Length = 12

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+"
)

// Generate returns a random password of Length characters containing at
// least one uppercase letter, one lowercase letter, one digit and one
// symbol. One character per class is picked up front so the policy holds
// for every output, then the result is shuffled so the guaranteed
// characters sit at unpredictable positions.
func Generate() string {
	all := upperChars + lowerChars + digitChars + symbolChars

	chars := make([]byte, 0, Length)
	chars = append(chars,
		pick(upperChars),
		pick(lowerChars),
		pick(digitChars),
		pick(symbolChars),
	)
	for len(chars) < Length {
		chars = append(chars, pick(all))
	}

	shuffle(chars)
	return string(chars)
}

func pick(set string) byte {
	return set[randInt(len(set))]
}

func shuffle(chars []byte) {
	for i := len(chars) - 1; i > 0; i-- {
		j := randInt(i + 1)
		chars[i], chars[j] = chars[j], chars[i]
	}
}

func randInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failing means the process has no usable
		// entropy source; nothing sensible to do but stop.
		panic(err)
	}
	return int(v.Int64())
}
