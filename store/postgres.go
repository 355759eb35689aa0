package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskman/models"
)

const queryTimeout = 10 * time.Second

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// DB is the Postgres-backed Store. It owns the connection pool for the
// lifetime of the process.
type DB struct {
	pool *pgxpool.Pool
}

func OpenDB(ctx context.Context, dsn string) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("error parsing DSN: %w", err)
	}

	config.MaxConns = 50
	config.MinConns = 2
	config.MaxConnIdleTime = 20 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &DB{pool: pool}, nil
}

func (db *DB) Close() {
	db.pool.Close()
}

// Bootstrap creates the tasks and users tables if they do not exist yet.
// Existing data is left alone.
func (db *DB) Bootstrap(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			completed BOOLEAN NOT NULL DEFAULT FALSE
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			hashed_password TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

func (db *DB) List(ctx context.Context, completed *bool) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stmt := "SELECT id, title, description, completed FROM tasks ORDER BY id;"
	args := []any{}
	if completed != nil {
		stmt = "SELECT id, title, description, completed FROM tasks WHERE completed = $1 ORDER BY id;"
		args = append(args, *completed)
	}

	rows, err := db.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed); err != nil {
			return nil, fmt.Errorf("error scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading task rows: %w", err)
	}
	return tasks, nil
}

func (db *DB) Get(ctx context.Context, id int) (models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stmt := "SELECT id, title, description, completed FROM tasks WHERE id = $1;"
	var t models.Task
	err := db.pool.QueryRow(ctx, stmt, id).Scan(&t.ID, &t.Title, &t.Description, &t.Completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, fmt.Errorf("error querying task %d: %w", id, err)
	}
	return t, nil
}

func (db *DB) Create(ctx context.Context, in models.CreateTask) (models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	completed := false
	if in.Completed != nil {
		completed = *in.Completed
	}

	stmt := `INSERT INTO tasks (title, description, completed)
		VALUES ($1, $2, $3)
		RETURNING id, title, description, completed;`
	var t models.Task
	err := db.pool.QueryRow(ctx, stmt, in.Title, in.Description, completed).
		Scan(&t.ID, &t.Title, &t.Description, &t.Completed)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to save task: %w", err)
	}
	return t, nil
}

// Update applies only the fields present in in, in one statement, so a
// concurrent writer can never observe a half-applied update. A present but
// null description clears the column.
func (db *DB) Update(ctx context.Context, id int, in models.UpdateTask) (models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stmt := `UPDATE tasks SET
			title = COALESCE($2, title),
			description = CASE WHEN $3 THEN $4 ELSE description END,
			completed = COALESCE($5, completed)
		WHERE id = $1
		RETURNING id, title, description, completed;`
	var t models.Task
	err := db.pool.QueryRow(ctx, stmt, id, in.Title, in.Description.Set, in.Description.Value, in.Completed).
		Scan(&t.ID, &t.Title, &t.Description, &t.Completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, fmt.Errorf("failed to update task %d: %w", id, err)
	}
	return t, nil
}

func (db *DB) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := db.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1;", id)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (db *DB) CreateUser(ctx context.Context, username, hashedPassword string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stmt := "INSERT INTO users (username, hashed_password) VALUES ($1, $2) RETURNING id;"
	u := models.User{Username: username, HashedPassword: hashedPassword}
	err := db.pool.QueryRow(ctx, stmt, username, hashedPassword).Scan(&u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, ErrUserExists
		}
		return models.User{}, fmt.Errorf("error adding user: %w", err)
	}
	return u, nil
}

func (db *DB) UserByUsername(ctx context.Context, username string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stmt := "SELECT id, username, hashed_password FROM users WHERE username = $1;"
	var u models.User
	err := db.pool.QueryRow(ctx, stmt, username).Scan(&u.ID, &u.Username, &u.HashedPassword)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("error querying user: %w", err)
	}
	return u, nil
}
