package infra_postgres_credential

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/MachariaP/RiffTrax-v2/internal/model"
	usecase_account "github.com/MachariaP/RiffTrax-v2/internal/usecase/account"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type credentialDTO struct {
	Key          string    `db:"key"`
	AccessToken  string    `db:"access_token"`
	RefreshToken string    `db:"refresh_token"`
	TokenType    string    `db:"token_type"`
	Expiry       time.Time `db:"expiry"`
}

func (d *Driver) Upsert(ctx context.Context, cred model.Credential) error {
	dto := credentialDTO{
		Key:          string(cred.Key),
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		TokenType:    cred.TokenType,
		Expiry:       cred.Expiry,
	}

	query := `
        INSERT INTO credentials (key, access_token, refresh_token, token_type, expiry)
        VALUES (:key, :access_token, :refresh_token, :token_type, :expiry)
        ON CONFLICT (key)
        DO UPDATE SET
            access_token = EXCLUDED.access_token,
            refresh_token = EXCLUDED.refresh_token,
            token_type = EXCLUDED.token_type,
            expiry = EXCLUDED.expiry
    `

	_, err := d.db.NamedExecContext(ctx, query, dto)
	return err
}

func (d *Driver) ByKey(ctx context.Context, key model.CredentialKey) (model.Credential, error) {
	var dto credentialDTO

	query := `
        SELECT key, access_token, refresh_token, token_type, expiry
        FROM credentials
        WHERE key = $1
    `

	err := d.db.GetContext(ctx, &dto, query, string(key))
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Credential{}, usecase_account.ErrResourceNotFound
		}
		return model.Credential{}, err
	}

	return model.Credential{
		Key:          model.CredentialKey(dto.Key),
		AccessToken:  dto.AccessToken,
		RefreshToken: dto.RefreshToken,
		TokenType:    dto.TokenType,
		Expiry:       dto.Expiry,
	}, nil
}
