package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// Repository provides access to stored user records.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByLogin(ctx context.Context, login string) ([]User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) (*User, error)
	Delete(ctx context.Context, id int64) error
}

type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type repository struct {
	db DB
}

func NewRepository(db DB) Repository {
	return &repository{db: db}
}

// The login column carries a unique index; a unique-violation on insert or
// update is surfaced as ErrLoginExists.
func (r *repository) Create(ctx context.Context, user *User) (*User, error) {
	query := `INSERT INTO users (login, first_name, last_name, date_of_birth, is_active)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	err := r.db.QueryRow(ctx, query,
		user.Login, user.FirstName, user.LastName, dateParam(user.DateOfBirth), user.IsActive,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrLoginExists
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT id, login, first_name, last_name, date_of_birth, is_active
	          FROM users
	          WHERE id = $1`

	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}

func (r *repository) GetByLogin(ctx context.Context, login string) ([]User, error) {
	query := `SELECT id, login, first_name, last_name, date_of_birth, is_active
	          FROM users
	          WHERE login = $1
	          ORDER BY id`

	return r.queryUsers(ctx, query, login)
}

func (r *repository) GetAll(ctx context.Context) ([]User, error) {
	query := `SELECT id, login, first_name, last_name, date_of_birth, is_active
	          FROM users
	          ORDER BY id`

	return r.queryUsers(ctx, query)
}

func (r *repository) Update(ctx context.Context, user *User) (*User, error) {
	query := `UPDATE users
	          SET login = $1, first_name = $2, last_name = $3, date_of_birth = $4, is_active = $5
	          WHERE id = $6`

	tag, err := r.db.Exec(ctx, query,
		user.Login, user.FirstName, user.LastName, dateParam(user.DateOfBirth), user.IsActive, user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrLoginExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return user, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) queryUsers(ctx context.Context, query string, args ...any) ([]User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user rows: %w", err)
	}

	return users, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var (
		u   User
		dob pgtype.Date
	)
	if err := row.Scan(&u.ID, &u.Login, &u.FirstName, &u.LastName, &dob, &u.IsActive); err != nil {
		return nil, err
	}
	if dob.Valid {
		u.DateOfBirth = &Date{Time: dob.Time}
	}

	return &u, nil
}

func dateParam(d *Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.Time, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
