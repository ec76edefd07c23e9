package services

import (
	"context"
	"io"
)

// ArchiveEntry describes one file inside an inspected archive
type ArchiveEntry struct {
	Name             string `json:"name"`
	Size             uint64 `json:"size"`
	CompressedSize   uint64 `json:"compressedSize"`
	CompressionRatio string `json:"compressionRatio"`
	Type             string `json:"type"`
	IsDirectory      bool   `json:"isDirectory"`
}

// ArchiveInspection summarizes an uploaded archive's contents
type ArchiveInspection struct {
	TotalFiles     int            `json:"totalFiles"`
	TotalSize      uint64         `json:"totalSize"`
	CompressedSize uint64         `json:"compressedSize"`
	Files          []ArchiveEntry `json:"files"`
}

// ImportedFile describes one classified entry from an imported archive
type ImportedFile struct {
	Name string `json:"name"`
	Type string `json:"type"` // project_data, task_data, or other
	Size uint64 `json:"size"`
}

// ImportError records a single unreadable archive entry
type ImportError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// ImportResult summarizes an archive import
type ImportResult struct {
	ImportedFiles int            `json:"importedFiles"`
	Files         []ImportedFile `json:"files"`
	Errors        []ImportError  `json:"errors,omitempty"`
}

// ArchiveService defines project archive export/import operations
type ArchiveService interface {
	// ExportProject writes a zip of one project (metadata, per-task
	// files, README) to w and returns the suggested file name
	ExportProject(ctx context.Context, projectID, userID string, w io.Writer) (string, error)

	// ExportAll writes a zip of every visible project to w and returns
	// the suggested file name
	ExportAll(ctx context.Context, userID string, w io.Writer) (string, error)

	// Inspect lists the contents of an uploaded zip archive
	Inspect(ctx context.Context, archive io.ReaderAt, size int64) (*ArchiveInspection, error)

	// ImportProject classifies the entries of an uploaded zip against a
	// project; owner or admin member only
	ImportProject(ctx context.Context, projectID, userID string, archive io.ReaderAt, size int64) (*ImportResult, error)
}
