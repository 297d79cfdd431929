package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"datalens/domain/core"
	"datalens/domain/dataset"
	"datalens/ports"
)

// datasetRepository implements the DatasetRepository interface
type datasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *sqlx.DB) ports.DatasetRepository {
	return &datasetRepository{db: db}
}

// EnsureSchema creates the datasets table if it does not exist
func EnsureSchema(db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS datasets (
		id TEXT PRIMARY KEY,
		original_filename TEXT NOT NULL,
		file_path TEXT,
		file_size BIGINT,
		mime_type TEXT,
		record_count INTEGER,
		field_count INTEGER,
		missing_rate DOUBLE PRECISION,
		source TEXT,
		status TEXT NOT NULL,
		error_message TEXT,
		metadata JSONB,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure datasets schema: %w", err)
	}
	return nil
}

// Create inserts a new dataset into the database
func (r *datasetRepository) Create(ctx context.Context, ds *dataset.Dataset) error {
	metadataJSON, err := json.Marshal(ds.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `INSERT INTO datasets (
		id, original_filename, file_path, file_size, mime_type,
		record_count, field_count, missing_rate, source, status,
		error_message, metadata, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = r.db.ExecContext(ctx, query,
		ds.ID, ds.OriginalFilename, ds.FilePath, ds.FileSize, ds.MimeType,
		ds.RecordCount, ds.FieldCount, ds.MissingRate, ds.Source, ds.Status,
		ds.ErrorMessage, metadataJSON, ds.CreatedAt, ds.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}
	return nil
}

const selectColumns = `id, original_filename, COALESCE(file_path, '') as file_path,
	COALESCE(file_size, 0) as file_size, COALESCE(mime_type, '') as mime_type,
	COALESCE(record_count, 0) as record_count, COALESCE(field_count, 0) as field_count,
	COALESCE(missing_rate, 0.0) as missing_rate, COALESCE(source, '') as source,
	status, COALESCE(error_message, '') as error_message, metadata, created_at, updated_at`

// GetByID retrieves a dataset by its ID
func (r *datasetRepository) GetByID(ctx context.Context, id core.ID) (*dataset.Dataset, error) {
	query := `SELECT ` + selectColumns + ` FROM datasets WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	ds, err := scanDataset(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("dataset", id.String())
		}
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}
	return ds, nil
}

// List retrieves datasets newest-first with limit/offset pagination
func (r *datasetRepository) List(ctx context.Context, limit, offset int) ([]*dataset.Dataset, error) {
	query := `SELECT ` + selectColumns + ` FROM datasets
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var datasets []*dataset.Dataset
	for rows.Next() {
		ds, err := scanDataset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		datasets = append(datasets, ds)
	}
	return datasets, rows.Err()
}

// Update persists changes to a dataset
func (r *datasetRepository) Update(ctx context.Context, ds *dataset.Dataset) error {
	metadataJSON, err := json.Marshal(ds.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `UPDATE datasets SET
		original_filename = $2, file_path = $3, file_size = $4, mime_type = $5,
		record_count = $6, field_count = $7, missing_rate = $8, source = $9,
		status = $10, error_message = $11, metadata = $12, updated_at = $13
	WHERE id = $1`

	ds.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, query,
		ds.ID, ds.OriginalFilename, ds.FilePath, ds.FileSize, ds.MimeType,
		ds.RecordCount, ds.FieldCount, ds.MissingRate, ds.Source,
		ds.Status, ds.ErrorMessage, metadataJSON, ds.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update dataset: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return core.NewNotFoundError("dataset", ds.ID.String())
	}
	return nil
}

// Delete removes a dataset
func (r *datasetRepository) Delete(ctx context.Context, id core.ID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return core.NewNotFoundError("dataset", id.String())
	}
	return nil
}

// UpdateStatus transitions a dataset's processing state
func (r *datasetRepository) UpdateStatus(ctx context.Context, id core.ID, status dataset.DatasetStatus, errorMsg string) error {
	query := `UPDATE datasets SET status = $2, error_message = $3, updated_at = $4 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status, errorMsg, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update dataset status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return core.NewNotFoundError("dataset", id.String())
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDataset(row rowScanner) (*dataset.Dataset, error) {
	var ds dataset.Dataset
	var metadataJSON []byte

	err := row.Scan(
		&ds.ID, &ds.OriginalFilename, &ds.FilePath, &ds.FileSize, &ds.MimeType,
		&ds.RecordCount, &ds.FieldCount, &ds.MissingRate, &ds.Source,
		&ds.Status, &ds.ErrorMessage, &metadataJSON, &ds.CreatedAt, &ds.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &ds.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}
	return &ds, nil
}
