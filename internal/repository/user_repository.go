package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/digital-notice-board/internal/model"
	"github.com/iliyamo/digital-notice-board/internal/utils"
)

// UserRepo provides access to the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,registration_number,name,email,password_hash,role,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var reg sql.NullString
	err := row.Scan(&u.ID, &reg, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	u.RegistrationNumber = reg.String
	return u, err
}

// Create inserts a user and returns its ID. The password is hashed
// here so callers never handle bcrypt directly. A duplicate email or
// registration number yields ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u model.User, password string, cost int) (uint64, error) {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	var reg any
	if u.RegistrationNumber != "" {
		reg = u.RegistrationNumber
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (registration_number, name, email, password_hash, role) VALUES (?,?,?,?,?)",
		reg, u.Name, email, hash, u.Role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByIdentifier fetches a user by normalized email or, failing that,
// by registration number. Login accepts either identifier.
func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (model.User, error) {
	identifier = strings.TrimSpace(identifier)
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1",
		strings.ToLower(identifier)))
	if err == nil {
		return u, nil
	}
	if err != sql.ErrNoRows {
		return model.User{}, err
	}
	u, err = scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE registration_number=? LIMIT 1",
		identifier))
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// List returns all users ordered by creation time. Password hashes are
// included in the model; handlers must not serialize them.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		var u model.User
		var reg sql.NullString
		if err := rows.Scan(&u.ID, &reg, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.RegistrationNumber = reg.String
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateRole changes a user's role. Tokens already issued keep their
// old role claim until they expire. Callers verify the user exists
// first; RowsAffected is not checked because MySQL reports zero rows
// when the role is unchanged.
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, role string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role=? WHERE id=?", role, id)
	return err
}
