package checklist

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/restolog/restolog/internal/errors"
	"github.com/restolog/restolog/internal/models"
)

func createChecklist(t *testing.T, repo *Repository) *models.VehicleChecklist {
	t.Helper()
	cl, err := repo.Create(context.Background(), "Test build", models.VehicleInfo{}, models.EngineInfo{})
	if err != nil {
		t.Fatalf("Failed to create checklist: %v", err)
	}
	return cl
}

func TestAppendItem(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	cl := createChecklist(t, repo)

	updated, err := repo.AppendItem(ctx, cl, ListTasks, "  Replace timing belt  ")
	if err != nil {
		t.Fatalf("Failed to append item: %v", err)
	}
	if len(updated.Tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(updated.Tasks))
	}

	item := updated.Tasks[0]
	if item.ID == "" {
		t.Error("Expected generated item id")
	}
	if item.Text != "Replace timing belt" {
		t.Errorf("Expected trimmed text, got %q", item.Text)
	}
	if item.Completed || item.CompletedAt != "" {
		t.Errorf("Expected new item incomplete, got %+v", item)
	}
}

func TestAppendBlankTextIsNoOp(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	cl := createChecklist(t, repo)

	updated, err := repo.AppendItem(ctx, cl, ListTasks, "   ")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if updated != cl {
		t.Error("Expected the same checklist back unchanged")
	}

	stored, err := repo.Get(ctx, cl.ID)
	if err != nil {
		t.Fatalf("Failed to get checklist: %v", err)
	}
	if len(stored.Tasks) != 0 {
		t.Errorf("Expected no tasks persisted, got %d", len(stored.Tasks))
	}
	if stored.UpdatedAt != cl.UpdatedAt {
		t.Error("Expected updated_at untouched by a no-op")
	}
}

func TestAppendAndTogglePreserveSiblings(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	cl := createChecklist(t, repo)

	var err error
	cl, err = repo.AppendItem(ctx, cl, ListTasks, "Strip paint")
	if err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	cl, err = repo.AppendItem(ctx, cl, ListTasks, "Weld floor pans")
	if err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	cl, err = repo.AppendItem(ctx, cl, ListPartsToInstall, "Weber carburetors")
	if err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	cl, err = repo.AppendItem(ctx, cl, ListMaintenance, "Change diff oil")
	if err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	firstTaskID := cl.Tasks[0].ID
	cl, err = repo.ToggleItem(ctx, cl, ListTasks, cl.Tasks[1].ID)
	if err != nil {
		t.Fatalf("Failed to toggle: %v", err)
	}

	if len(cl.Tasks) != 2 || len(cl.PartsToInstall) != 1 || len(cl.Maintenance) != 1 || len(cl.ResearchItems) != 0 {
		t.Fatalf("List lengths wrong after edits: %d/%d/%d/%d",
			len(cl.Tasks), len(cl.PartsToInstall), len(cl.Maintenance), len(cl.ResearchItems))
	}
	if cl.Tasks[0].ID != firstTaskID || cl.Tasks[0].Completed {
		t.Errorf("Untargeted item changed: %+v", cl.Tasks[0])
	}
	if !cl.Tasks[1].Completed || cl.Tasks[1].CompletedAt == "" {
		t.Errorf("Targeted item not completed: %+v", cl.Tasks[1])
	}
	if cl.PartsToInstall[0].Text != "Weber carburetors" || cl.PartsToInstall[0].Completed {
		t.Errorf("Sibling list changed: %+v", cl.PartsToInstall[0])
	}
}

func TestToggleParity(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	clock := fixClock(repo, time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC))
	cl := createChecklist(t, repo)

	var err error
	cl, err = repo.AppendItem(ctx, cl, ListResearchItems, "Correct interior trim codes")
	if err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	itemID := cl.ResearchItems[0].ID

	toggles := 5
	for i := 0; i < toggles; i++ {
		*clock = clock.Add(time.Minute)
		cl, err = repo.ToggleItem(ctx, cl, ListResearchItems, itemID)
		if err != nil {
			t.Fatalf("Failed to toggle (round %d): %v", i, err)
		}
	}

	// Odd number of toggles leaves the item completed.
	if !cl.ResearchItems[0].Completed {
		t.Error("Expected item completed after odd toggle count")
	}
	if cl.ResearchItems[0].CompletedAt == "" {
		t.Error("Expected completed_at set while completed")
	}
}

func TestToggleTwiceClearsCompletedAt(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	cl := createChecklist(t, repo)

	var err error
	cl, err = repo.AppendItem(ctx, cl, ListMaintenance, "Flush coolant")
	if err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	itemID := cl.Maintenance[0].ID

	cl, err = repo.ToggleItem(ctx, cl, ListMaintenance, itemID)
	if err != nil {
		t.Fatalf("Failed to toggle: %v", err)
	}
	cl, err = repo.ToggleItem(ctx, cl, ListMaintenance, itemID)
	if err != nil {
		t.Fatalf("Failed to toggle back: %v", err)
	}

	item := cl.Maintenance[0]
	if item.Completed {
		t.Error("Expected item back to incomplete")
	}
	if item.CompletedAt != "" {
		t.Errorf("Expected completed_at cleared, got %q", item.CompletedAt)
	}
}

func TestToggleUnknownItemIsNoOp(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	cl := createChecklist(t, repo)

	updated, err := repo.ToggleItem(ctx, cl, ListTasks, "no-such-item")
	if err != nil {
		t.Fatalf("Expected no error for unknown item, got %v", err)
	}
	if updated != cl {
		t.Error("Expected the same checklist back unchanged")
	}

	stored, err := repo.Get(ctx, cl.ID)
	if err != nil {
		t.Fatalf("Failed to get checklist: %v", err)
	}
	if stored.UpdatedAt != cl.UpdatedAt {
		t.Error("Expected updated_at untouched by a no-op")
	}
}

func TestUnknownListRejected(t *testing.T) {
	repo, _ := newTestRepo(t)
	cl := createChecklist(t, repo)

	_, err := repo.AppendItem(context.Background(), cl, ItemList("wishlist"), "Turbo kit")
	if !apperrors.Is(err, apperrors.ErrInvalid) {
		t.Fatalf("Expected INVALID_INPUT, got %v", err)
	}

	if _, err := ParseItemList("wishlist"); !apperrors.Is(err, apperrors.ErrInvalid) {
		t.Fatalf("Expected INVALID_INPUT from ParseItemList, got %v", err)
	}
	if list, err := ParseItemList("parts_to_install"); err != nil || list != ListPartsToInstall {
		t.Fatalf("Expected parts_to_install to parse, got %v / %v", list, err)
	}
}
