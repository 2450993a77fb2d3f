package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/models"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/repository"
)

const (
	selectCredentialQuery = `SELECT salt, verifier FROM user_authentication WHERE username = $1`

	// The primary key makes the insert the single point of arbitration:
	// a losing writer affects zero rows and changes nothing.
	insertCredentialQuery = `INSERT INTO user_authentication (username, salt, verifier)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING`
)

var _ repository.CredentialRepository = (*SQLCredentialRepository)(nil)

// SQLCredentialRepository implements CredentialRepository on the
// user_authentication table.
type SQLCredentialRepository struct {
	db *sql.DB
}

func NewSQLCredentialRepository(db *sql.DB) *SQLCredentialRepository {
	return &SQLCredentialRepository{db: db}
}

func (r *SQLCredentialRepository) GetCredential(ctx context.Context, username string) (*models.Credential, error) {
	var salt, verifier []byte
	err := r.db.QueryRowContext(ctx, selectCredentialQuery, username).Scan(&salt, &verifier)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrCredentialNotFound
	}
	if err != nil {
		return nil, repository.Unavailable("db select failed", err)
	}
	return repository.DecodeCredential(username, salt, verifier)
}

func (r *SQLCredentialRepository) CreateCredentialIfAbsent(ctx context.Context, username string, salt models.Salt, verifier models.Verifier) error {
	res, err := r.db.ExecContext(ctx, insertCredentialQuery, username, salt[:], verifier[:])
	if err != nil {
		return repository.Unavailable("db insert failed", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return repository.Unavailable("db rows affected failed", err)
	}
	if n == 0 {
		return repository.ErrUserExists
	}
	return nil
}
