package domain

// Admin is an operator account. Email is the unique key.
type Admin struct {
	Email        string
	Name         string
	PasswordHash string
}
