package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor used when registering users and admins.
const PasswordCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash stored on the user record.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword reports whether plain matches a stored hash. Any
// bcrypt error, including a malformed hash, counts as a mismatch.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
