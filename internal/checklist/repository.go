// Package checklist provides the repository and edit operations for
// vehicle restoration checklists: the single source of truth for
// reading, creating, updating and deleting a checklist record while
// keeping its summary projection consistent in the index collection.
package checklist

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/restolog/restolog/internal/errors"
	"github.com/restolog/restolog/internal/ident"
	"github.com/restolog/restolog/internal/kv"
	"github.com/restolog/restolog/internal/logging"
	"github.com/restolog/restolog/internal/models"
)

const (
	// indexKey holds the JSON array of summary projections.
	indexKey = "vehicle_checklists"
	// recordKeyPrefix prefixes the per-checklist full record keys.
	recordKeyPrefix = "checklist_"
)

// Repository owns all checklist persistence. The index is treated as a
// derived cache of the full records: every write recomputes the summary
// entry from the full record, and reads never consult the index for a
// record's existence.
//
// There is no locking and no versioning: two concurrent Update calls on
// the same id each load, mutate and save their own copy, and the second
// save silently wins. That matches the single-user foreground usage the
// app is designed for and is deliberately not guarded against.
type Repository struct {
	store kv.Store
	now   func() time.Time
	newID func() string
}

// NewRepository creates a Repository over the given store.
func NewRepository(store kv.Store) *Repository {
	return &Repository{
		store: store,
		now:   time.Now,
		newID: ident.New,
	}
}

func recordKey(id string) string {
	return recordKeyPrefix + id
}

// timestamp returns the current instant as an RFC 3339 UTC string, the
// format used for every stored timestamp.
func (r *Repository) timestamp() string {
	return r.now().UTC().Format(time.RFC3339)
}

// DefaultTitle derives a display title from the vehicle specs: the
// non-empty parts of "<year> <make> <model>" space-joined, or
// "Untitled Checklist" when all three are blank.
func DefaultTitle(info models.VehicleInfo) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{info.Year, info.Make, info.Model} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	if len(parts) == 0 {
		return "Untitled Checklist"
	}
	return strings.Join(parts, " ")
}

// Create builds a new checklist with empty item and photo lists,
// persists the full record and appends its summary to the index. When
// title is blank the title is derived from the vehicle specs.
//
// The two writes are not atomic: a failure between them can leave a
// full record with no index entry, which the next successful Update
// repairs (the index entry is upserted on every write).
func (r *Repository) Create(ctx context.Context, title string, vehicleInfo models.VehicleInfo, engineInfo models.EngineInfo) (*models.VehicleChecklist, error) {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle(vehicleInfo)
	}

	now := r.timestamp()
	cl := &models.VehicleChecklist{
		ID:          r.newID(),
		Title:       title,
		VehicleInfo: vehicleInfo,
		EngineInfo:  engineInfo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	cl.Normalize()

	if err := r.putRecord(ctx, cl); err != nil {
		return nil, err
	}
	if err := r.upsertSummary(ctx, cl.Summary()); err != nil {
		return nil, err
	}

	logging.Debug("checklist created", map[string]interface{}{
		"id":    cl.ID,
		"title": cl.Title,
	})
	return cl, nil
}

// Get reads the full record by id. A missing record is NOT_FOUND
// regardless of what the index claims.
func (r *Repository) Get(ctx context.Context, id string) (*models.VehicleChecklist, error) {
	raw, ok, err := r.store.Get(ctx, recordKey(id))
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorageRead, "failed to read checklist", err)
	}
	if !ok {
		return nil, errors.New(errors.ErrNotFound, "checklist "+id+" not found")
	}

	var cl models.VehicleChecklist
	if err := json.Unmarshal([]byte(raw), &cl); err != nil {
		return nil, errors.Wrap(errors.ErrDecode, "failed to decode checklist "+id, err)
	}
	return &cl, nil
}

// ListSummaries reads the index collection. An absent index key is an
// empty list; entries stay in insertion order (the index is append-only
// apart from deletes).
func (r *Repository) ListSummaries(ctx context.Context) ([]models.ChecklistSummary, error) {
	raw, ok, err := r.store.Get(ctx, indexKey)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorageRead, "failed to read checklist index", err)
	}
	if !ok {
		return []models.ChecklistSummary{}, nil
	}

	var summaries []models.ChecklistSummary
	if err := json.Unmarshal([]byte(raw), &summaries); err != nil {
		return nil, errors.Wrap(errors.ErrDecode, "failed to decode checklist index", err)
	}
	if summaries == nil {
		summaries = []models.ChecklistSummary{}
	}
	return summaries, nil
}

// Update loads the current record, applies mutate to it, refreshes
// UpdatedAt, persists the full record and upserts the matching summary
// entry. The id and creation stamp survive whatever mutate does.
//
// Concurrent Updates on the same id race read-modify-write; the last
// save wins. See the Repository doc comment.
func (r *Repository) Update(ctx context.Context, id string, mutate func(*models.VehicleChecklist)) (*models.VehicleChecklist, error) {
	cl, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	createdAt := cl.CreatedAt
	mutate(cl)
	cl.ID = id
	cl.CreatedAt = createdAt
	cl.Normalize()
	cl.Touch(r.timestamp())

	if err := r.putRecord(ctx, cl); err != nil {
		return nil, err
	}
	if err := r.upsertSummary(ctx, cl.Summary()); err != nil {
		return nil, err
	}
	return cl, nil
}

// Delete removes the summary entry and the full record. Deleting an id
// that does not exist is a no-op, not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	summaries, err := r.ListSummaries(ctx)
	if err != nil {
		return err
	}

	kept := summaries[:0]
	removed := false
	for _, s := range summaries {
		if s.ID == id {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	if removed {
		if err := r.putIndex(ctx, kept); err != nil {
			return err
		}
	}

	if err := r.store.Delete(ctx, recordKey(id)); err != nil {
		return errors.Wrap(errors.ErrStorageWrite, "failed to delete checklist", err)
	}

	logging.Debug("checklist deleted", map[string]interface{}{"id": id})
	return nil
}

// Restore writes a full record as-is, preserving its id and timestamps,
// and upserts its summary. Used by archive import.
func (r *Repository) Restore(ctx context.Context, cl *models.VehicleChecklist) error {
	if cl.ID == "" {
		return errors.New(errors.ErrInvalid, "checklist has no id")
	}
	cl.Normalize()
	if err := r.putRecord(ctx, cl); err != nil {
		return err
	}
	return r.upsertSummary(ctx, cl.Summary())
}

// putRecord persists the full record under its own key.
func (r *Repository) putRecord(ctx context.Context, cl *models.VehicleChecklist) error {
	raw, err := json.Marshal(cl)
	if err != nil {
		return errors.Wrap(errors.ErrStorageWrite, "failed to encode checklist", err)
	}
	if err := r.store.Set(ctx, recordKey(cl.ID), string(raw)); err != nil {
		return errors.Wrap(errors.ErrStorageWrite, "failed to write checklist", err)
	}
	return nil
}

// upsertSummary replaces the index entry with the same id, or appends
// when none exists yet. This is the index-repair path as well: a write
// that finds no entry for an existing record recreates it.
func (r *Repository) upsertSummary(ctx context.Context, summary models.ChecklistSummary) error {
	summaries, err := r.ListSummaries(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range summaries {
		if summaries[i].ID == summary.ID {
			summaries[i] = summary
			found = true
			break
		}
	}
	if !found {
		summaries = append(summaries, summary)
	}
	return r.putIndex(ctx, summaries)
}

func (r *Repository) putIndex(ctx context.Context, summaries []models.ChecklistSummary) error {
	raw, err := json.Marshal(summaries)
	if err != nil {
		return errors.Wrap(errors.ErrStorageWrite, "failed to encode checklist index", err)
	}
	if err := r.store.Set(ctx, indexKey, string(raw)); err != nil {
		return errors.Wrap(errors.ErrStorageWrite, "failed to write checklist index", err)
	}
	return nil
}
