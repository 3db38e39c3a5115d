package repo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"jokebox/src/core/domain"
	"jokebox/src/core/ports"
	"jokebox/src/infra/db"
)

// PostgresRepository implements CollectionRepository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

var _ ports.CollectionRepository = (*PostgresRepository)(nil)

// NewPostgresRepository constructs a repository backed by Postgres.
func NewPostgresRepository(pg *db.Postgres, log *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		pool: pg.Pool,
		log:  log,
	}
}

func (r *PostgresRepository) Health(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return false
}

// Users

func (r *PostgresRepository) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	const q = `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING user_id, username, password_hash, created_at
	`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, username, passwordHash).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewAlreadyExistsError("username already exists")
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `
		SELECT user_id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`
	var u domain.User
	if err := r.pool.QueryRow(ctx, q, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	const q = `
		SELECT user_id, username, password_hash, created_at
		FROM users
		WHERE user_id = $1
	`
	var u domain.User
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, err
	}
	return &u, nil
}

// Jokes

// jokeColumns is the select list shared by all joke reads. The LEFT JOIN
// resolves the owner's username for serialization; unclaimed jokes keep NULL.
const jokeColumns = `
	j.joke_id, j.external_id, j.value, j.category, j.user_id, u.username, j.created_at
`

func scanJoke(row pgx.Row) (*domain.Joke, error) {
	var j domain.Joke
	if err := row.Scan(&j.ID, &j.ExternalID, &j.Value, &j.Category, &j.OwnerID, &j.OwnerUsername, &j.CreatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *PostgresRepository) ListJokesByOwner(ctx context.Context, ownerID int64) ([]domain.Joke, error) {
	const q = `
		SELECT ` + jokeColumns + `
		FROM jokes j
		LEFT JOIN users u ON u.user_id = j.user_id
		WHERE j.user_id = $1
		ORDER BY j.joke_id ASC
	`
	rows, err := r.pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jokes := make([]domain.Joke, 0)
	for rows.Next() {
		j, err := scanJoke(rows)
		if err != nil {
			return nil, err
		}
		jokes = append(jokes, *j)
	}
	return jokes, rows.Err()
}

func (r *PostgresRepository) GetJokeForOwner(ctx context.Context, jokeID, ownerID int64) (*domain.Joke, error) {
	const q = `
		SELECT ` + jokeColumns + `
		FROM jokes j
		LEFT JOIN users u ON u.user_id = j.user_id
		WHERE j.joke_id = $1 AND j.user_id = $2
	`
	j, err := scanJoke(r.pool.QueryRow(ctx, q, jokeID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("joke")
		}
		return nil, err
	}
	return j, nil
}

func (r *PostgresRepository) GetJokeByID(ctx context.Context, jokeID int64) (*domain.Joke, error) {
	const q = `
		SELECT ` + jokeColumns + `
		FROM jokes j
		LEFT JOIN users u ON u.user_id = j.user_id
		WHERE j.joke_id = $1
	`
	j, err := scanJoke(r.pool.QueryRow(ctx, q, jokeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("joke")
		}
		return nil, err
	}
	return j, nil
}

func (r *PostgresRepository) CreateJoke(ctx context.Context, ownerID int64, value string) (*domain.Joke, error) {
	const q = `
		WITH inserted AS (
			INSERT INTO jokes (value, user_id)
			VALUES ($1, $2)
			RETURNING joke_id, external_id, value, category, user_id, created_at
		)
		SELECT i.joke_id, i.external_id, i.value, i.category, i.user_id, u.username, i.created_at
		FROM inserted i
		LEFT JOIN users u ON u.user_id = i.user_id
	`
	return scanJoke(r.pool.QueryRow(ctx, q, value, ownerID))
}

func (r *PostgresRepository) UpdateJokeValue(ctx context.Context, jokeID int64, value string) (*domain.Joke, error) {
	const q = `
		WITH updated AS (
			UPDATE jokes
			SET value = $2
			WHERE joke_id = $1
			RETURNING joke_id, external_id, value, category, user_id, created_at
		)
		SELECT p.joke_id, p.external_id, p.value, p.category, p.user_id, u.username, p.created_at
		FROM updated p
		LEFT JOIN users u ON u.user_id = p.user_id
	`
	j, err := scanJoke(r.pool.QueryRow(ctx, q, jokeID, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("joke")
		}
		return nil, err
	}
	return j, nil
}

func (r *PostgresRepository) DeleteJoke(ctx context.Context, jokeID int64) error {
	const q = `
		DELETE FROM jokes
		WHERE joke_id = $1
	`
	res, err := r.pool.Exec(ctx, q, jokeID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("joke")
	}
	return nil
}

// UpsertExternalJoke relies on the uq_jokes_external_id_user_id constraint:
// a concurrent second writer hits the conflict, inserts nothing, and falls
// through to reading the row the first writer created.
func (r *PostgresRepository) UpsertExternalJoke(ctx context.Context, ownerID int64, externalID, value string, category *string) (*domain.Joke, bool, error) {
	const insert = `
		WITH inserted AS (
			INSERT INTO jokes (external_id, value, category, user_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (external_id, user_id) DO NOTHING
			RETURNING joke_id, external_id, value, category, user_id, created_at
		)
		SELECT i.joke_id, i.external_id, i.value, i.category, i.user_id, u.username, i.created_at
		FROM inserted i
		LEFT JOIN users u ON u.user_id = i.user_id
	`
	j, err := scanJoke(r.pool.QueryRow(ctx, insert, externalID, value, category, ownerID))
	if err == nil {
		return j, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	const existing = `
		SELECT ` + jokeColumns + `
		FROM jokes j
		LEFT JOIN users u ON u.user_id = j.user_id
		WHERE j.external_id = $1 AND j.user_id = $2
	`
	j, err = scanJoke(r.pool.QueryRow(ctx, existing, externalID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, domain.NewNotFoundError("joke")
		}
		return nil, false, err
	}
	return j, false, nil
}
