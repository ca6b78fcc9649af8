// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	cryptoRand "crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ConfirmationCodeLength is the number of digits in a signup confirmation code.
const ConfirmationCodeLength = 6

// GenerateConfirmationCode produces a cryptographically random numeric code.
//
// Codes are dispatched to the user by email and exchanged for an access token;
// six digits keeps them typeable on mobile while the dispatch cooldown keeps
// online guessing impractical.
func GenerateConfirmationCode() (string, error) {
	var builder strings.Builder
	for i := 0; i < ConfirmationCodeLength; i++ {
		digit, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("sec: failed to generate confirmation code: %w", err)
		}
		builder.WriteByte(byte('0' + digit.Int64()))
	}
	return builder.String(), nil
}

// HashConfirmationCode hashes a plain-text confirmation code using bcrypt.
//
// Only the hash is persisted; the plain code exists solely in the signup email.
func HashConfirmationCode(plainCode string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainCode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash confirmation code: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckConfirmationCode compares a plain-text code with its stored hash.
func CheckConfirmationCode(plainCode, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainCode))
	return err == nil
}
