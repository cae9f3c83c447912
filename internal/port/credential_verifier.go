package port

// CredentialVerifier hides the password hashing scheme from the core.
// Implementations must use a salted one-way hash; plaintext is handled as a
// byte slice so callers can zero it after use.
type CredentialVerifier interface {
	// Hash derives a storable hash from a plaintext password.
	Hash(password []byte) (string, error)

	// Verify reports whether password matches the stored hash. A mismatch is
	// not an error.
	Verify(password []byte, hash string) (bool, error)
}
