package model

// UserID is the opaque identity a client presents on every request.
// It is distinct from the credential key on purpose: identity of a
// participant and the key under which the host's provider tokens are
// stored must never be conflated.
type UserID string

const EmptyUserID UserID = ""

// CredentialKey addresses a stored set of provider tokens.
type CredentialKey string

// CredentialKeyFor is the explicit UserID -> CredentialKey mapping.
// One-to-one today, but kept as a named seam so the two identifier
// spaces can diverge without touching domain logic.
func CredentialKeyFor(id UserID) CredentialKey {
	return CredentialKey(id)
}
