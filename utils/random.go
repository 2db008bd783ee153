package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// GenerateRefCode returns an uppercase hexadecimal code of 2n characters.
// Booth applications hand this to the applicant so they can check the
// decision later without an account.
func GenerateRefCode(n int) (string, error) {
	byt := make([]byte, n)

	if _, err := rand.Read(byt); err != nil {
		return "", err
	}

	return strings.ToUpper(hex.EncodeToString(byt)), nil
}
