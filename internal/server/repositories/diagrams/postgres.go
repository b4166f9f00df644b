package diagrams

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pkozlov/flowdeck/internal/common"
	"github.com/pkozlov/flowdeck/internal/dbx"
	"github.com/pkozlov/flowdeck/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Diagram, error) {
	query := `SELECT id, user_id, title, content, created_at, updated_at
		FROM diagrams
		WHERE user_id = $1
		ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select diagrams: %w", err)
	}
	defer rows.Close()

	result := []*models.Diagram{}
	for rows.Next() {
		d := &models.Diagram{}
		if err := rows.Scan(&d.ID, &d.UserID, &d.Title, &d.Content, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan diagram: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diagrams: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, d *models.Diagram) (*models.Diagram, error) {
	query := `INSERT INTO diagrams (user_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, d.UserID, d.Title, []byte(d.Content)).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert diagram: %w", err)
	}

	return d, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID int64, id int64) (*models.Diagram, error) {
	query := `SELECT id, user_id, title, content, created_at, updated_at
		FROM diagrams
		WHERE id = $1 AND user_id = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *PostgresRepository) Update(ctx context.Context, userID int64, id int64, patch *models.DiagramUpdate) (*models.Diagram, error) {
	// COALESCE keeps the stored value for fields absent from the patch.
	query := `UPDATE diagrams
		SET title = COALESCE($3, title),
		    content = COALESCE($4, content),
		    updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, content, created_at, updated_at`

	var content []byte
	if patch.Content != nil {
		content = []byte(patch.Content)
	}

	return r.scanOne(r.db.QueryRowContext(ctx, query, id, userID, patch.Title, content))
}

func (r *PostgresRepository) Delete(ctx context.Context, userID int64, id int64) error {
	query := `DELETE FROM diagrams WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete diagram: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete diagram: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Diagram, error) {
	d := &models.Diagram{}
	err := row.Scan(&d.ID, &d.UserID, &d.Title, &d.Content, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("select diagram: %w", err)
	}
	return d, nil
}
