package catalog

import (
	"crypto/rand"
	"fmt"

	"github.com/mr-tron/base58"
)

// uidAlphabet is the base58 alphabet uids are drawn from: digits and
// letters with the visually-ambiguous 0, O, I, l removed.
const uidAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// uidLength is the fixed length of every uid.
const uidLength = 8

// ValidUID reports whether s is exactly uidLength characters, all drawn from
// uidAlphabet.
func ValidUID(s string) bool {
	if len(s) != uidLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if indexInAlphabet(s[i]) < 0 {
			return false
		}
	}
	return true
}

func indexInAlphabet(c byte) int {
	for i := 0; i < len(uidAlphabet); i++ {
		if uidAlphabet[i] == c {
			return i
		}
	}
	return -1
}

// generateUID draws random bytes, base58-encodes them with the standard
// Bitcoin alphabet (the same character set as uidAlphabet), and folds the
// first uidLength characters onto uidAlphabet to produce a fixed-length
// token. It retries
// until taken reports an unused candidate.
func generateUID(taken func(string) bool) (string, error) {
	buf := make([]byte, 16)
	for attempt := 0; attempt < 10000; attempt++ {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("catalog: generate uid: %w", err)
		}
		encoded := base58.Encode(buf)
		if len(encoded) < uidLength {
			continue
		}
		candidate := foldToAlphabet(encoded[:uidLength])
		if !taken(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("catalog: could not find an unused uid after many attempts")
}

// foldToAlphabet maps each input byte onto uidAlphabet by its byte value
// modulo the alphabet length, so every output character is drawn from
// uidAlphabet whatever the input bytes are.
func foldToAlphabet(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = uidAlphabet[int(s[i])%len(uidAlphabet)]
	}
	return string(out)
}
