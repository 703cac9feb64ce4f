package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"medstaff_backend/internal/models"
)

// PostRepository defines the interface for staff feed database operations.
type PostRepository interface {
	CreatePost(executor SQLExecutor, post *models.StaffPost) (*models.StaffPost, error)
	GetPostByID(id int64) (*models.StaffPost, error)
	GetPosts() ([]models.StaffPost, error)
	LikePost(executor SQLExecutor, id int64) (*models.StaffPost, error)
}

type postRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new instance of PostRepository.
func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, author_id, author_name, content, likes, created_at, updated_at`

func scanPostRow(row scanner) (*models.StaffPost, error) {
	var post models.StaffPost
	err := row.Scan(
		&post.ID, &post.AuthorID, &post.AuthorName, &post.Content, &post.Likes,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning staff post: %v", ErrDatabaseError, err)
	}
	return &post, nil
}

// CreatePost inserts a new post on the staff feed.
func (r *postRepository) CreatePost(executor SQLExecutor, post *models.StaffPost) (*models.StaffPost, error) {
	query := `INSERT INTO staff_posts (author_id, author_name, content, likes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	post.CreatedAt = currentTime
	post.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		post.AuthorID, post.AuthorName, post.Content, post.Likes,
		post.CreatedAt, post.UpdatedAt,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: creating staff post: %v", ErrDatabaseError, err)
	}
	return post, nil
}

// GetPostByID retrieves a single post.
func (r *postRepository) GetPostByID(id int64) (*models.StaffPost, error) {
	query := `SELECT ` + postColumns + ` FROM staff_posts WHERE id = $1`
	return scanPostRow(r.db.QueryRow(query, id))
}

// GetPosts retrieves the feed, newest first.
func (r *postRepository) GetPosts() ([]models.StaffPost, error) {
	rows, err := r.db.Query(`SELECT ` + postColumns + ` FROM staff_posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying staff posts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	posts := []models.StaffPost{}
	for rows.Next() {
		post, scanErr := scanPostRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating staff posts: %v", ErrDatabaseError, err)
	}
	return posts, nil
}

// LikePost increments a post's like counter and returns the updated post.
func (r *postRepository) LikePost(executor SQLExecutor, id int64) (*models.StaffPost, error) {
	query := `UPDATE staff_posts SET likes = likes + 1, updated_at = $1 WHERE id = $2
	          RETURNING ` + postColumns
	return scanPostRow(executor.QueryRow(query, time.Now(), id))
}
