package model

import "time"

// Credential holds one host's provider tokens.
type Credential struct {
	Key          CredentialKey
	AccessToken  string
	RefreshToken string
	TokenType    string
	Expiry       time.Time
}

func (c Credential) Expired(now time.Time) bool {
	return !c.Expiry.After(now)
}
