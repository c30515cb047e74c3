package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a salted, self-describing bcrypt digest. Two calls on
// the same plaintext produce different strings.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether hash was produced from plain. A malformed
// hash string yields false, never an error to the caller.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
