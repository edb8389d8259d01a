// Package export provides backup and restore of all checklists as a
// single archive file: gzip-compressed JSON, optionally sealed with
// AES-256-GCM when a password is supplied.
package export

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/natefinch/atomic"

	"github.com/restolog/restolog/internal/checklist"
	apperrors "github.com/restolog/restolog/internal/errors"
	"github.com/restolog/restolog/internal/logging"
	"github.com/restolog/restolog/internal/models"
)

// ArchiveVersion identifies the archive layout.
const ArchiveVersion = "1"

// Service provides export/import over a checklist repository.
type Service struct {
	repo *checklist.Repository
}

// NewService creates a new export Service.
func NewService(repo *checklist.Repository) *Service {
	return &Service{repo: repo}
}

// Manifest describes an archive.
type Manifest struct {
	Version        string `json:"version"`
	ExportedAt     string `json:"exported_at"`
	ChecklistCount int    `json:"checklist_count"`
	Checksum       string `json:"checksum"`
	Encrypted      bool   `json:"encrypted"`
}

// archive is the on-disk payload before compression/encryption.
type archive struct {
	Manifest   Manifest                   `json:"manifest"`
	Checklists []*models.VehicleChecklist `json:"checklists"`
}

// Result describes a completed export.
type Result struct {
	FilePath       string
	SizeBytes      int64
	ChecklistCount int
	Checksum       string
	Encrypted      bool
	Duration       time.Duration
}

// ImportResult describes a completed import.
type ImportResult struct {
	Imported int
	Skipped  int
	Duration time.Duration
}

// Export writes every checklist (full records, photos included) to
// outputPath. The file is written atomically: a failed export never
// leaves a truncated archive behind. An empty password produces an
// unencrypted archive.
func (s *Service) Export(ctx context.Context, outputPath, password string) (*Result, error) {
	start := time.Now()

	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}

	checklists := make([]*models.VehicleChecklist, 0, len(summaries))
	for _, summary := range summaries {
		cl, err := s.repo.Get(ctx, summary.ID)
		if apperrors.Is(err, apperrors.ErrNotFound) {
			// stale index entry with no record behind it; the record wins
			logging.Warn("skipping stale index entry", map[string]interface{}{"id": summary.ID})
			continue
		}
		if err != nil {
			return nil, err
		}
		checklists = append(checklists, cl)
	}

	checksum, err := checksumOf(checklists)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExportFailed, "failed to encode checklists", err)
	}

	arch := archive{
		Manifest: Manifest{
			Version:        ArchiveVersion,
			ExportedAt:     time.Now().UTC().Format(time.RFC3339),
			ChecklistCount: len(checklists),
			Checksum:       checksum,
			Encrypted:      password != "",
		},
		Checklists: checklists,
	}

	raw, err := json.Marshal(arch)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExportFailed, "failed to encode archive", err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(raw); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExportFailed, "failed to compress archive", err)
	}
	if err := gz.Close(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExportFailed, "failed to compress archive", err)
	}

	blob := buf.Bytes()
	if password != "" {
		blob, err = encrypt(blob, password)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrExportFailed, "failed to encrypt archive", err)
		}
	}

	if err := atomic.WriteFile(outputPath, bytes.NewReader(blob)); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExportFailed, "failed to write archive", err)
	}

	logging.Info("archive exported", map[string]interface{}{
		"path":       outputPath,
		"checklists": len(checklists),
		"encrypted":  password != "",
	})
	return &Result{
		FilePath:       outputPath,
		SizeBytes:      int64(len(blob)),
		ChecklistCount: len(checklists),
		Checksum:       checksum,
		Encrypted:      password != "",
		Duration:       time.Since(start),
	}, nil
}

// Import restores checklists from an archive written by Export.
// Checklists whose id already exists in the store are skipped, never
// overwritten; the summary index is rebuilt entry by entry from the
// restored full records.
func (s *Service) Import(ctx context.Context, archivePath, password string) (*ImportResult, error) {
	start := time.Now()

	blob, err := os.ReadFile(archivePath)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImportFailed, "failed to read archive", err)
	}

	if !isGzip(blob) {
		if password == "" {
			return nil, apperrors.New(apperrors.ErrInvalidPassword, "archive is encrypted, password required")
		}
		blob, err = decrypt(blob, password)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInvalidPassword, "failed to decrypt archive", err)
		}
		if !isGzip(blob) {
			return nil, apperrors.New(apperrors.ErrCorruptedArchive, "decrypted archive is not valid")
		}
	}

	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCorruptedArchive, "failed to decompress archive", err)
	}
	raw, err := io.ReadAll(gz)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCorruptedArchive, "failed to decompress archive", err)
	}

	var arch archive
	if err := json.Unmarshal(raw, &arch); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCorruptedArchive, "failed to decode archive", err)
	}

	checksum, err := checksumOf(arch.Checklists)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCorruptedArchive, "failed to verify archive", err)
	}
	if arch.Manifest.Checksum != "" && checksum != arch.Manifest.Checksum {
		return nil, apperrors.New(apperrors.ErrCorruptedArchive, "archive checksum mismatch")
	}

	result := &ImportResult{}
	for _, cl := range arch.Checklists {
		_, err := s.repo.Get(ctx, cl.ID)
		if err == nil {
			result.Skipped++
			continue
		}
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if err := s.repo.Restore(ctx, cl); err != nil {
			return nil, err
		}
		result.Imported++
	}

	logging.Info("archive imported", map[string]interface{}{
		"path":     archivePath,
		"imported": result.Imported,
		"skipped":  result.Skipped,
	})
	result.Duration = time.Since(start)
	return result, nil
}

// checksumOf hashes the canonical JSON encoding of the checklist set.
func checksumOf(checklists []*models.VehicleChecklist) (string, error) {
	raw, err := json.Marshal(checklists)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

func isGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}
