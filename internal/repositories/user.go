package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/course-api/internal/models"
)

const selectUser = `
	SELECT id, first_name, last_name, email_address, password, created_at, updated_at
	FROM users
`

type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByEmail looks a user up by the unique email index. The match is case-sensitive.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = selectUser + `WHERE email_address = $1`

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, email)
	logQuery(ctx, query, []any{email}, user.UserID, err)
	if err != nil {
		return nil, mapError(err)
	}

	return &user, nil
}

type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a user and returns its new id. A taken email yields ErrDuplicate.
func (r *UserWriteRepository) Save(ctx context.Context, firstName, lastName, email, passwordHash string) (int64, error) {
	const query = `
		INSERT INTO users (first_name, last_name, email_address, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &id, query, firstName, lastName, email, passwordHash)

	// the hash stays out of the log
	logQuery(ctx, query, []any{firstName, lastName, email, "***"}, id, err)

	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}
