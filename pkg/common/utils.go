package common

import (
	"math/rand"
	"time"
)

const codeCharacters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomCode(length int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	result := make([]byte, length)
	for i := range result {
		result[i] = codeCharacters[r.Intn(len(codeCharacters))]
	}
	return string(result)
}

// GenerateReferralCode returns an 8-character alphanumeric referral code.
// Uniqueness against existing users is the caller's responsibility.
func GenerateReferralCode() string {
	return randomCode(8)
}

func GenerateTrxNo() string {
	return randomCode(7)
}
