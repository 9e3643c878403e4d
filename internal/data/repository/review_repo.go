package repository

import (
	"context"
	"fmt"

	"decor-marketplace/internal/data/entity"
	"decor-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByServiceID(ctx context.Context, serviceID uuid.UUID) ([]*entity.Review, error)
	FindByServiceAndUser(ctx context.Context, serviceID uuid.UUID, email string) (*entity.Review, error)
	AverageRating(ctx context.Context, serviceID uuid.UUID) (float64, int64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, service_id, user_email, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.ServiceID,
		review.UserEmail,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("service_id", review.ServiceID.String()),
			zap.String("user_email", review.UserEmail),
		)
		return fmt.Errorf("create review for service %s: %w", review.ServiceID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByServiceID(ctx context.Context, serviceID uuid.UUID) ([]*entity.Review, error) {
	query := `
		SELECT id, service_id, user_email, rating, comment, created_at
		FROM reviews
		WHERE service_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, serviceID)
	if err != nil {
		r.log.Error("Failed to list reviews",
			zap.Error(err),
			zap.String("service_id", serviceID.String()),
		)
		return nil, fmt.Errorf("list reviews for service %s: %w", serviceID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.ServiceID,
			&review.UserEmail,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, nil
}

func (r *reviewRepository) FindByServiceAndUser(ctx context.Context, serviceID uuid.UUID, email string) (*entity.Review, error) {
	query := `
		SELECT id, service_id, user_email, rating, comment, created_at
		FROM reviews
		WHERE service_id = $1 AND user_email = $2
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, serviceID, email).Scan(
		&review.ID,
		&review.ServiceID,
		&review.UserEmail,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review",
			zap.Error(err),
			zap.String("service_id", serviceID.String()),
			zap.String("user_email", email),
		)
		return nil, fmt.Errorf("find review for service %s: %w", serviceID.String(), err)
	}

	return &review, nil
}

func (r *reviewRepository) AverageRating(ctx context.Context, serviceID uuid.UUID) (float64, int64, error) {
	query := `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE service_id = $1`

	var avg float64
	var count int64
	if err := r.db.QueryRow(ctx, query, serviceID).Scan(&avg, &count); err != nil {
		r.log.Error("Failed to compute average rating",
			zap.Error(err),
			zap.String("service_id", serviceID.String()),
		)
		return 0, 0, fmt.Errorf("average rating for service %s: %w", serviceID.String(), err)
	}

	return avg, count, nil
}
