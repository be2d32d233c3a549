package infra_spotify

import (
	"context"
	"log/slog"
	"time"

	spotify "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	spotifyendpoint "golang.org/x/oauth2/spotify"

	"github.com/MachariaP/RiffTrax-v2/internal/config"
	"github.com/MachariaP/RiffTrax-v2/internal/model"
	usecase_account "github.com/MachariaP/RiffTrax-v2/internal/usecase/account"
	usecase_playback "github.com/MachariaP/RiffTrax-v2/internal/usecase/playback"
)

// Driver talks to the Spotify Web API on behalf of room hosts. It
// implements both the playback provider and the account authenticator
// ports: one OAuth config serves both concerns.
type Driver struct {
	conf   *oauth2.Config
	creds  usecase_account.CredentialStore
	logger *slog.Logger
}

func New(cfg config.Spotify, creds usecase_account.CredentialStore) *Driver {
	return &Driver{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes: []string{
				spotifyauth.ScopeUserReadPlaybackState,
				spotifyauth.ScopeUserModifyPlaybackState,
				spotifyauth.ScopeUserReadCurrentlyPlaying,
			},
			Endpoint: spotifyendpoint.Endpoint,
		},
		creds:  creds,
		logger: slog.Default(),
	}
}

func (d *Driver) AuthURL(state string) string {
	return d.conf.AuthCodeURL(state)
}

func (d *Driver) Exchange(ctx context.Context, code string) (model.Credential, error) {
	tok, err := d.conf.Exchange(ctx, code)
	if err != nil {
		return model.Credential{}, err
	}
	return credentialFromToken(tok), nil
}

func (d *Driver) Refresh(ctx context.Context, cred model.Credential) (model.Credential, error) {
	tok, err := d.conf.TokenSource(ctx, tokenFromCredential(cred)).Token()
	if err != nil {
		return model.Credential{}, err
	}
	return credentialFromToken(tok), nil
}

func (d *Driver) CurrentlyPlaying(ctx context.Context, key model.CredentialKey) (model.TrackSnapshot, error) {
	client, err := d.clientFor(ctx, key)
	if err != nil {
		return model.TrackSnapshot{}, err
	}

	playing, err := client.PlayerCurrentlyPlaying(ctx)
	if err != nil {
		return model.TrackSnapshot{}, err
	}
	// Spotify answers 204 without a body when nothing is playing and
	// omits the item for private sessions and ads.
	if playing == nil || playing.Item == nil {
		return model.TrackSnapshot{}, usecase_playback.ErrNoPlayback
	}

	item := playing.Item
	artists := make([]string, 0, len(item.Artists))
	for _, artist := range item.Artists {
		artists = append(artists, artist.Name)
	}

	var imageURL string
	if len(item.Album.Images) > 0 {
		imageURL = item.Album.Images[0].URL
	}

	return model.TrackSnapshot{
		TrackID:    string(item.ID),
		Title:      item.Name,
		Artists:    artists,
		DurationMS: int(item.Duration),
		ProgressMS: int(playing.Progress),
		ImageURL:   imageURL,
		Playing:    playing.Playing,
	}, nil
}

func (d *Driver) Play(ctx context.Context, key model.CredentialKey) error {
	client, err := d.clientFor(ctx, key)
	if err != nil {
		return err
	}
	return client.Play(ctx)
}

func (d *Driver) Pause(ctx context.Context, key model.CredentialKey) error {
	client, err := d.clientFor(ctx, key)
	if err != nil {
		return err
	}
	return client.Pause(ctx)
}

func (d *Driver) Skip(ctx context.Context, key model.CredentialKey) error {
	client, err := d.clientFor(ctx, key)
	if err != nil {
		return err
	}
	return client.Next(ctx)
}

// clientFor loads the host's tokens, lets oauth2 refresh them when
// expired, and persists the rotated access token before handing back
// an API client.
func (d *Driver) clientFor(ctx context.Context, key model.CredentialKey) (*spotify.Client, error) {
	cred, err := d.creds.ByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	tok, err := d.conf.TokenSource(ctx, tokenFromCredential(cred)).Token()
	if err != nil {
		return nil, err
	}

	if tok.AccessToken != cred.AccessToken {
		fresh := credentialFromToken(tok)
		fresh.Key = cred.Key
		if fresh.RefreshToken == "" {
			fresh.RefreshToken = cred.RefreshToken
		}
		if err := d.creds.Upsert(ctx, fresh); err != nil {
			d.logger.Error("failed to persist refreshed token",
				slog.String("error", err.Error()))
		}
	}

	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))
	return spotify.New(httpClient), nil
}

func tokenFromCredential(cred model.Credential) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		TokenType:    cred.TokenType,
		Expiry:       cred.Expiry,
	}
}

func credentialFromToken(tok *oauth2.Token) model.Credential {
	expiry := tok.Expiry
	if expiry.IsZero() {
		expiry = time.Now().Add(time.Hour)
	}
	return model.Credential{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       expiry,
	}
}
