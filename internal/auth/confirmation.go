package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	confirmationCodeBytes = 20
	confirmationHashCost  = 10
)

// GenerateConfirmationCode returns a random opaque code for out-of-band
// delivery. Only its hash is ever stored.
func GenerateConfirmationCode() (string, error) {
	buf := make([]byte, confirmationCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate confirmation code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashConfirmationCode hashes a code together with the user's last-login
// state. Because the stamp is part of the hashed input, a successful
// token exchange (which advances last-login) invalidates the code, and a
// rotation overwrites the stored hash outright.
func HashConfirmationCode(code string, lastLogin *time.Time) (string, error) {
	input := code + "|" + lastLoginStamp(lastLogin)
	hash, err := bcrypt.GenerateFromPassword([]byte(input), confirmationHashCost)
	if err != nil {
		return "", fmt.Errorf("hash confirmation code: %w", err)
	}
	return string(hash), nil
}

// VerifyConfirmationCode reports whether code matches the stored hash
// under the current last-login state.
func VerifyConfirmationCode(storedHash, code string, lastLogin *time.Time) bool {
	if storedHash == "" || code == "" {
		return false
	}
	input := code + "|" + lastLoginStamp(lastLogin)
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(input)) == nil
}

func lastLoginStamp(lastLogin *time.Time) string {
	if lastLogin == nil {
		return "never"
	}
	return strconv.FormatInt(lastLogin.Unix(), 10)
}
