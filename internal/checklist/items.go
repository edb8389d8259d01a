package checklist

import (
	"context"
	"strings"

	"github.com/restolog/restolog/internal/errors"
	"github.com/restolog/restolog/internal/models"
)

// ItemList selects one of the four parallel item lists of a checklist.
// The set is closed; the selector maps to its list through a typed
// accessor instead of field-name indexing.
type ItemList string

const (
	ListTasks          ItemList = "tasks"
	ListPartsToInstall ItemList = "parts_to_install"
	ListMaintenance    ItemList = "maintenance"
	ListResearchItems  ItemList = "research_items"
)

// ParseItemList maps a wire-level list name onto its selector.
func ParseItemList(name string) (ItemList, error) {
	switch ItemList(name) {
	case ListTasks, ListPartsToInstall, ListMaintenance, ListResearchItems:
		return ItemList(name), nil
	}
	return "", errors.New(errors.ErrInvalid, "unknown item list "+name)
}

// items returns a pointer to the selected list, nil for an unknown
// selector.
func (l ItemList) items(cl *models.VehicleChecklist) *[]models.ChecklistItem {
	switch l {
	case ListTasks:
		return &cl.Tasks
	case ListPartsToInstall:
		return &cl.PartsToInstall
	case ListMaintenance:
		return &cl.Maintenance
	case ListResearchItems:
		return &cl.ResearchItems
	}
	return nil
}

// AppendItem appends a new incomplete item with the given text to the
// selected list and persists through Update. Blank text (after
// trimming) is a no-op that returns the checklist unchanged. Sibling
// lists and existing items keep their order and identity.
func (r *Repository) AppendItem(ctx context.Context, cl *models.VehicleChecklist, list ItemList, text string) (*models.VehicleChecklist, error) {
	if list.items(cl) == nil {
		return nil, errors.New(errors.ErrInvalid, "unknown item list "+string(list))
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return cl, nil
	}

	id := r.newID()
	return r.Update(ctx, cl.ID, func(c *models.VehicleChecklist) {
		items := list.items(c)
		*items = append(*items, models.ChecklistItem{
			ID:   id,
			Text: text,
		})
	})
}

// ToggleItem flips the completion state of the item with itemID in the
// selected list, stamping or clearing its completion time, and persists
// through Update. An unknown itemID is a no-op, matching the forgiving
// idempotence of delete operations.
func (r *Repository) ToggleItem(ctx context.Context, cl *models.VehicleChecklist, list ItemList, itemID string) (*models.VehicleChecklist, error) {
	items := list.items(cl)
	if items == nil {
		return nil, errors.New(errors.ErrInvalid, "unknown item list "+string(list))
	}
	if !containsItem(*items, itemID) {
		return cl, nil
	}

	now := r.timestamp()
	return r.Update(ctx, cl.ID, func(c *models.VehicleChecklist) {
		fresh := list.items(c)
		for i := range *fresh {
			if (*fresh)[i].ID == itemID {
				(*fresh)[i].Toggle(now)
				return
			}
		}
	})
}

func containsItem(items []models.ChecklistItem, id string) bool {
	for i := range items {
		if items[i].ID == id {
			return true
		}
	}
	return false
}
