package dataset

import (
	"time"

	"datalens/domain/core"
)

// DatasetStatus represents the processing state of a dataset
type DatasetStatus string

const (
	StatusProcessing DatasetStatus = "processing"
	StatusReady      DatasetStatus = "ready"
	StatusFailed     DatasetStatus = "failed"
)

// Dataset represents an uploaded dataset and its inferred metadata
type Dataset struct {
	ID core.ID `json:"id"`

	// File information
	OriginalFilename string `json:"original_filename"`
	FilePath         string `json:"file_path,omitempty"`
	FileSize         int64  `json:"file_size"`
	MimeType         string `json:"mime_type"`

	// Dataset statistics
	RecordCount int     `json:"record_count"`
	FieldCount  int     `json:"field_count"`
	MissingRate float64 `json:"missing_rate"`
	Source      string  `json:"source"` // "upload", "csv", "excel"

	// Processing state
	Status       DatasetStatus `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`

	// Rich metadata stored as structured data
	Metadata DatasetMetadata `json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DatasetMetadata contains detailed information about the dataset
type DatasetMetadata struct {
	Fields     []FieldInfo              `json:"fields"`
	SampleRows []map[string]interface{} `json:"sample_rows,omitempty"`
}

// FieldInfo describes a single field/column in the dataset
type FieldInfo struct {
	Name         string             `json:"name"`
	Kind         string             `json:"kind"` // "numeric", "categorical", "date", ...
	MissingCount int                `json:"missing_count"`
	UniqueCount  int                `json:"unique_count"`
	Statistics   map[string]float64 `json:"statistics,omitempty"` // min, max, mean, etc.
}

// NewDataset creates a new dataset with default values
func NewDataset(originalFilename string) *Dataset {
	return &Dataset{
		ID:               core.NewID(),
		OriginalFilename: originalFilename,
		Status:           StatusProcessing,
		Source:           "upload",
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
}

// IsReady returns true if the dataset is ready for use
func (d *Dataset) IsReady() bool {
	return d.Status == StatusReady
}
