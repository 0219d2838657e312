package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type MySQLTagRepository struct {
	db *sql.DB
}

func NewMySQLTagRepository(db *sql.DB) *MySQLTagRepository {
	return &MySQLTagRepository{db: db}
}

func (r *MySQLTagRepository) FindActiveLabels(ctx context.Context) ([]string, error) {
	query := `
		SELECT label
		FROM Tags
		WHERE isActive = 1
		ORDER BY position, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		labels = append(labels, label)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	return labels, nil
}
