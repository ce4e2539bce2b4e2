package domain

import "time"

// SubjectType differentiates admin tokens from table-session tokens.
type SubjectType string

const (
	SubjectTypeAdmin        SubjectType = "admin"
	SubjectTypeTableSession SubjectType = "table_session"
)

// TokenClaims is the verified payload of a bearer token.
type TokenClaims struct {
	Subject   string
	Kind      SubjectType
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// StrategyKind names a credential variant.
type StrategyKind string

const (
	StrategyPassword  StrategyKind = "password"
	StrategyFederated StrategyKind = "federated"
)

// Credentials is what a caller presents to log in. Strategy selects which of the
// optional fields is required.
type Credentials struct {
	Strategy StrategyKind
	Email    string
	Password string
	Token    string
}
