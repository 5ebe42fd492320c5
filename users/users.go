package users

// User is the credential record held for an authenticated subject. The
// tokens are opaque bearer strings from the identity provider; this
// service only writes them, a separate API-call concern reads them.
type User struct {
	ID           string // stable subject identifier from the provider
	AccessToken  string
	RefreshToken string
}
