package models

const (
	// SaltSize is the length in bytes of a per-user salt.
	SaltSize = 16
	// VerifierSize is the length in bytes of a stored verifier (raw bcrypt output).
	VerifierSize = 24
)

// Salt is the per-user random value mixed into the verifier.
type Salt [SaltSize]byte

// Verifier is the one-way value stored in place of the password.
type Verifier [VerifierSize]byte

// Credential is the record kept for every registered username.
// Salt and Verifier are never serialized to API clients.
type Credential struct {
	Username string   `json:"username"`
	Salt     Salt     `json:"-"`
	Verifier Verifier `json:"-"`
}
