package common

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const hashIterations = 4096

func GenerateSalt(length int) string {
	buf := make([]byte, length)
	rand.Read(buf)
	return hex.EncodeToString(buf)[:length]
}

func GeneratePassword(password string, salt string) string {
	hash := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, 32, sha256.New)
	return hex.EncodeToString(hash)
}

func VerifyPassword(password string, salt string, hashed string) bool {
	expected := GeneratePassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(hashed)) == 1
}
