package users

// User is an account row in the system store. PasswordHash is the hex-encoded
// SHA-256 digest of the password; see auth.HashPassword.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}
