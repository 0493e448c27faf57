package ports

// PasswordHasher is the one-way credential transform. Hash output embeds
// its own salt and cost parameters. Verify never errors: a corrupt or
// malformed hash reports false, the same as a wrong password.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
