package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

type UserRepositoryInterface interface {
	GetUser(ctx context.Context, id int64) (*User, error)
	GetPostsByUser(ctx context.Context, userID int64) ([]Post, error)
}

// PostgresUserRepository reads users and posts from the users/posts tables.
type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepositoryInterface {
	return &PostgresUserRepository{db: db}
}

// GetUser retrieves a user by ID
func (r *PostgresUserRepository) GetUser(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT id, name, username, email, phone, website
		FROM users
		WHERE id = $1
	`

	u := &User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID,
		&u.Name,
		&u.Username,
		&u.Email,
		&u.Phone,
		&u.Website,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).WithField("user_id", id).Error("Failed to get user by ID")
		return nil, fmt.Errorf("%w: query user %d: %v", ErrServiceUnavailable, id, err)
	}

	return u, nil
}

// GetPostsByUser retrieves all posts written by a user, ordered by post ID
func (r *PostgresUserRepository) GetPostsByUser(ctx context.Context, userID int64) ([]Post, error) {
	query := `
		SELECT user_id, id, title, body
		FROM posts
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to query posts")
		return nil, fmt.Errorf("%w: query posts for user %d: %v", ErrServiceUnavailable, userID, err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.UserID, &p.ID, &p.Title, &p.Body); err != nil {
			return nil, fmt.Errorf("%w: scan post row: %v", ErrServiceUnavailable, err)
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate posts: %v", ErrServiceUnavailable, err)
	}

	return posts, nil
}
