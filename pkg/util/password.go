package util

import "golang.org/x/crypto/bcrypt"

// bcrypt cost used for every stored credential. Hashes embed the cost, so
// raising it later only affects passwords set after the change.
const passwordHashCost = 12

// HashPassword derives the bcrypt hash stored in users.password_hash.
// The raw password never touches the database.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches a stored hash. Any bcrypt
// failure, malformed hash included, counts as a mismatch.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
