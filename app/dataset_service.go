package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"datalens/domain/core"
	"datalens/domain/dataset"
	"datalens/domain/table"
	"datalens/internal/errors"
	"datalens/internal/profiling"
	"datalens/ports"
)

// sampleRowCount is how many preview rows are stored in dataset metadata
const sampleRowCount = 5

// DatasetService handles dataset ingestion, profiling, and retrieval
type DatasetService struct {
	repo           ports.DatasetRepository
	loader         ports.TableLoader
	profiler       *profiling.Profiler
	uploadDir      string
	maxPreviewRows int
}

// NewDatasetService creates a new dataset service
func NewDatasetService(repo ports.DatasetRepository, loader ports.TableLoader, profiler *profiling.Profiler, uploadDir string, maxPreviewRows int) *DatasetService {
	return &DatasetService{
		repo:           repo,
		loader:         loader,
		profiler:       profiler,
		uploadDir:      uploadDir,
		maxPreviewRows: maxPreviewRows,
	}
}

// Ingest stores an uploaded file, loads and profiles it, and persists the
// resulting metadata. A file that fails to load is recorded with failed
// status so the caller can surface the reason.
func (s *DatasetService) Ingest(ctx context.Context, filename string, src io.Reader) (*dataset.Dataset, error) {
	ds := dataset.NewDataset(filename)

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create upload directory")
	}

	storedPath := filepath.Join(s.uploadDir, fmt.Sprintf("%s%s", ds.ID, filepath.Ext(filename)))
	out, err := os.Create(storedPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store uploaded file")
	}
	size, err := io.Copy(out, src)
	out.Close()
	if err != nil {
		return nil, errors.Wrap(err, "failed to store uploaded file")
	}
	ds.FilePath = storedPath
	ds.FileSize = size

	if err := s.repo.Create(ctx, ds); err != nil {
		return nil, err
	}

	t, err := s.loader.Load(storedPath, s.maxPreviewRows)
	if err != nil {
		log.Printf("[DatasetService] failed to load %s: %v", filename, err)
		ds.Status = dataset.StatusFailed
		ds.ErrorMessage = err.Error()
		if updateErr := s.repo.Update(ctx, ds); updateErr != nil {
			return nil, updateErr
		}
		return ds, nil
	}

	profile, err := s.profiler.Profile(ctx, t)
	if err != nil {
		return nil, errors.Wrap(err, "failed to profile dataset")
	}

	ds.RecordCount = profile.Rows
	ds.FieldCount = profile.Columns
	ds.MissingRate = profile.MissingRate
	ds.Metadata = buildMetadata(t, profile)
	ds.Status = dataset.StatusReady

	if err := s.repo.Update(ctx, ds); err != nil {
		return nil, err
	}
	log.Printf("[DatasetService] ingested %s (%d rows, %d columns)", filename, profile.Rows, profile.Columns)
	return ds, nil
}

// Get retrieves dataset metadata by ID
func (s *DatasetService) Get(ctx context.Context, id core.ID) (*dataset.Dataset, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves datasets newest-first
func (s *DatasetService) List(ctx context.Context, limit, offset int) ([]*dataset.Dataset, error) {
	return s.repo.List(ctx, limit, offset)
}

// LoadTable materializes the typed table for a stored dataset
func (s *DatasetService) LoadTable(ctx context.Context, id core.ID) (*table.Table, error) {
	ds, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ds.IsReady() {
		return nil, errors.InvalidInput(fmt.Sprintf("dataset %s is not ready (status %s)", id, ds.Status))
	}
	return s.loader.Load(ds.FilePath, s.maxPreviewRows)
}

// buildMetadata converts a profile into persisted field info plus sample rows
func buildMetadata(t *table.Table, profile *profiling.DatasetProfile) dataset.DatasetMetadata {
	meta := dataset.DatasetMetadata{
		Fields: make([]dataset.FieldInfo, 0, len(profile.Profiles)),
	}
	for _, cp := range profile.Profiles {
		field := dataset.FieldInfo{
			Name:         cp.Name,
			Kind:         string(cp.Kind),
			MissingCount: cp.MissingCount,
			UniqueCount:  cp.UniqueCount,
		}
		if cp.Stats != nil {
			field.Statistics = map[string]float64{
				"mean":    cp.Stats.Mean,
				"std_dev": cp.Stats.StdDev,
				"min":     cp.Stats.Min,
				"max":     cp.Stats.Max,
				"median":  cp.Stats.Median,
			}
		}
		meta.Fields = append(meta.Fields, field)
	}

	for i := 0; i < t.Len() && i < sampleRowCount; i++ {
		row := make(map[string]interface{}, len(t.Schema().Columns))
		for _, col := range t.Schema().Columns {
			row[col.Name] = t.Value(i, col.Name).JSONScalar()
		}
		meta.SampleRows = append(meta.SampleRows, row)
	}
	return meta
}
