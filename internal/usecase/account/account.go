package usecase_account

import (
	"context"
	"errors"
	"time"

	"github.com/MachariaP/RiffTrax-v2/internal/model"
)

var (
	ErrExchangeFailed   = errors.New("authorization code exchange failed")
	ErrRefreshFailed    = errors.New("token refresh failed")
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
)

//go:generate mockery --name=CredentialStore --output=./mocks --filename=credential_store.go
type CredentialStore interface {
	Upsert(ctx context.Context, cred model.Credential) error
	ByKey(ctx context.Context, key model.CredentialKey) (model.Credential, error)
}

//go:generate mockery --name=Authenticator --output=./mocks --filename=authenticator.go
type Authenticator interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (model.Credential, error)
	Refresh(ctx context.Context, cred model.Credential) (model.Credential, error)
}

type Usecase struct {
	store CredentialStore
	auth  Authenticator
}

func New(store CredentialStore, auth Authenticator) *Usecase {
	return &Usecase{store: store, auth: auth}
}

// AuthURL builds the provider consent URL. The user id rides along as
// the OAuth state so the callback can attribute the tokens.
func (u *Usecase) AuthURL(userID model.UserID) string {
	return u.auth.AuthURL(string(userID))
}

// HandleCallback exchanges the authorization code and stores the
// resulting tokens under the user's credential key.
func (u *Usecase) HandleCallback(ctx context.Context, userID model.UserID, code string) error {
	cred, err := u.auth.Exchange(ctx, code)
	if err != nil {
		return errors.Join(ErrExchangeFailed, err)
	}
	cred.Key = model.CredentialKeyFor(userID)

	if err := u.store.Upsert(ctx, cred); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// IsAuthenticated reports whether the user has usable provider
// credentials, refreshing them first when expired.
func (u *Usecase) IsAuthenticated(ctx context.Context, userID model.UserID) (bool, error) {
	cred, err := u.store.ByKey(ctx, model.CredentialKeyFor(userID))
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return false, nil
		}
		return false, errors.Join(ErrInternal, err)
	}

	if !cred.Expired(time.Now()) {
		return true, nil
	}

	fresh, err := u.auth.Refresh(ctx, cred)
	if err != nil {
		return false, errors.Join(ErrRefreshFailed, err)
	}
	// The refresh grant may omit the refresh token; keep the old one.
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = cred.RefreshToken
	}
	fresh.Key = cred.Key

	if err := u.store.Upsert(ctx, fresh); err != nil {
		return false, errors.Join(ErrInternal, err)
	}
	return true, nil
}
