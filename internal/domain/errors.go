package domain

import "errors"

var (
	// ErrAdminExists is returned when an admin with the same email is already stored.
	ErrAdminExists = errors.New("admin already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrHashing is returned when a password could not be hashed.
	ErrHashing = errors.New("password hashing failed")

	// ErrInvalidHash is returned for a stored hash that cannot be decoded.
	ErrInvalidHash = errors.New("invalid password hash")

	// ErrInvalidToken is returned for tampered, malformed or expired tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTableOccupied is returned when the exclusive-table policy rejects a new session.
	ErrTableOccupied = errors.New("table already has an active session")

	// ErrUnsupportedStrategy is returned for credential variants this service cannot verify.
	ErrUnsupportedStrategy = errors.New("unsupported authentication strategy")
)
