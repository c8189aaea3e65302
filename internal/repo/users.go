package repo

import (
	"context"
	"database/sql"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "usuario"
)

type User struct {
	ID           int       `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserRepository interface {
	CreateUser(ctx context.Context, login, passwordHash, role string) (int, error)
	GetByLogin(ctx context.Context, login string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, login string) error
}

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, passwordHash, role string) (int, error) {
	var id int
	query := "INSERT INTO users (login, password, role) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, passwordHash, role).Scan(&id)
	return id, mapErr("create user", err)
}

func (r *PostgresUserRepository) GetByLogin(ctx context.Context, login string) (User, error) {
	var u User
	query := "SELECT id, login, password, role, created_at FROM users WHERE login=$1"
	err := r.db.QueryRowContext(ctx, query, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return User{}, mapErr("get user", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, login, role, created_at FROM users ORDER BY login")
	if err != nil {
		return nil, mapErr("list users", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Login, &u.Role, &u.CreatedAt); err != nil {
			return nil, mapErr("scan user", err)
		}
		users = append(users, u)
	}
	return users, mapErr("list users", rows.Err())
}

func (r *PostgresUserRepository) DeleteUser(ctx context.Context, login string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE login=$1", login)
	if err != nil {
		return mapErr("delete user", err)
	}
	return affectedOrNotFound("delete user", res)
}
