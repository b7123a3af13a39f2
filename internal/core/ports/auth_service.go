package ports

// TokenIssuer mints signed, time-limited credentials binding a user email.
// Verification lives in the HTTP middleware; no server-side session state
// is kept.
type TokenIssuer interface {
	IssueToken(email string) (string, error)
}
