// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// codeAlphabet is the character set for confirmation codes (letters + digits).
const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// HashPassword hashes a plain-text secret using the bcrypt algorithm.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text secret with its hashed version.
// An empty hash never matches.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	if existingHash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}

// GenerateConfirmationCode returns a random string of the given length drawn
// uniformly from ASCII letters and digits using the OS CSPRNG.
func GenerateConfirmationCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("auth: confirmation code length must be positive")
	}

	alphabetSize := big.NewInt(int64(len(codeAlphabet)))
	code := make([]byte, length)

	for i := range code {
		index, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("auth: failed to read random source: %w", err)
		}
		code[i] = codeAlphabet[index.Int64()]
	}

	return string(code), nil
}
