package crypto

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor used when no explicit cost is given.
const DefaultCost = 12

// HashPassword hashes plaintext using bcrypt with the given cost. The salt
// is generated per call and embedded in the returned hash.
func HashPassword(plain string, cost int) ([]byte, error) {
	if cost <= 0 {
		cost = DefaultCost
	}
	return bcrypt.GenerateFromPassword([]byte(plain), cost)
}

// ComparePassword compares plaintext to a hashed secret. It returns a
// non-nil error on mismatch and nil when the password matches.
func ComparePassword(hash []byte, plain string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain))
}
