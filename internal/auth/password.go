package auth

import "golang.org/x/crypto/bcrypt"

// Passwords are stored as bcrypt digests only. The digest embeds its own
// salt, so equality checks must go through CheckPassword.

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
