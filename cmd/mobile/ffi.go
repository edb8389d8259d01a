// Package main provides the FFI bridge for mobile platforms.
// Build as shared library: librestolog.so (Android) / restolog.framework (iOS).
// All exported functions use the C calling convention and can be called
// from Dart FFI; every call returns a JSON string the caller must free
// with FreeString.
package main

/*
#include <stdlib.h>
*/
import "C"
import (
	"context"
	"encoding/json"
	"sync"
	"unsafe"

	"github.com/restolog/restolog/internal/checklist"
	apperrors "github.com/restolog/restolog/internal/errors"
	"github.com/restolog/restolog/internal/export"
	"github.com/restolog/restolog/internal/kv/sqlite"
	"github.com/restolog/restolog/internal/models"
)

var (
	once      sync.Once
	store     *sqlite.Store
	repo      *checklist.Repository
	exportSvc *export.Service
	initErr   error
)

//export Init
// Init opens the on-device store under dataDir and prepares the
// repository. Safe to call more than once; only the first call does
// work.
func Init(dataDir *C.char) *C.char {
	dir := C.GoString(dataDir)
	once.Do(func() {
		store, initErr = sqlite.Open(dir)
		if initErr != nil {
			return
		}
		repo = checklist.NewRepository(store)
		exportSvc = export.NewService(repo)
	})
	if initErr != nil {
		return cError(apperrors.Wrap(apperrors.ErrStorageWrite, "failed to open store", initErr))
	}
	return cOK(map[string]interface{}{"status": "ready"})
}

//export ChecklistCreate
func ChecklistCreate(title, vehicleInfoJSON, engineInfoJSON *C.char) *C.char {
	if err := ready(); err != nil {
		return cError(err)
	}

	var vehicleInfo models.VehicleInfo
	if s := C.GoString(vehicleInfoJSON); s != "" {
		if err := json.Unmarshal([]byte(s), &vehicleInfo); err != nil {
			return cError(apperrors.Wrap(apperrors.ErrInvalid, "invalid vehicle info", err))
		}
	}
	var engineInfo models.EngineInfo
	if s := C.GoString(engineInfoJSON); s != "" {
		if err := json.Unmarshal([]byte(s), &engineInfo); err != nil {
			return cError(apperrors.Wrap(apperrors.ErrInvalid, "invalid engine info", err))
		}
	}

	cl, err := repo.Create(context.Background(), C.GoString(title), vehicleInfo, engineInfo)
	if err != nil {
		return cError(err)
	}
	return cResult(cl)
}

//export ChecklistGet
func ChecklistGet(id *C.char) *C.char {
	if err := ready(); err != nil {
		return cError(err)
	}
	cl, err := repo.Get(context.Background(), C.GoString(id))
	if err != nil {
		return cError(err)
	}
	return cResult(cl)
}

//export ChecklistList
func ChecklistList() *C.char {
	if err := ready(); err != nil {
		return cError(err)
	}
	summaries, err := repo.ListSummaries(context.Background())
	if err != nil {
		return cError(err)
	}
	return cResult(map[string]interface{}{
		"checklists": summaries,
		"total":      len(summaries),
	})
}

//export ChecklistDelete
func ChecklistDelete(id *C.char) *C.char {
	if err := ready(); err != nil {
		return cError(err)
	}
	if err := repo.Delete(context.Background(), C.GoString(id)); err != nil {
		return cError(err)
	}
	return cOK(map[string]interface{}{"status": "deleted"})
}

//export ItemAppend
func ItemAppend(id, listName, text *C.char) *C.char {
	if err := ready(); err != nil {
		return cError(err)
	}
	list, err := checklist.ParseItemList(C.GoString(listName))
	if err != nil {
		return cError(err)
	}
	cl, err := repo.Get(context.Background(), C.GoString(id))
	if err != nil {
		return cError(err)
	}
	cl, err = repo.AppendItem(context.Background(), cl, list, C.GoString(text))
	if err != nil {
		return cError(err)
	}
	return cResult(cl)
}

//export ItemToggle
func ItemToggle(id, listName, itemID *C.char) *C.char {
	if err := ready(); err != nil {
		return cError(err)
	}
	list, err := checklist.ParseItemList(C.GoString(listName))
	if err != nil {
		return cError(err)
	}
	cl, err := repo.Get(context.Background(), C.GoString(id))
	if err != nil {
		return cError(err)
	}
	cl, err = repo.ToggleItem(context.Background(), cl, list, C.GoString(itemID))
	if err != nil {
		return cError(err)
	}
	return cResult(cl)
}

//export PhotoAdd
func PhotoAdd(id, base64Data *C.char) *C.char {
	if err := ready(); err != nil {
		return cError(err)
	}
	cl, err := repo.Get(context.Background(), C.GoString(id))
	if err != nil {
		return cError(err)
	}
	cl, err = repo.AddPhoto(context.Background(), cl, C.GoString(base64Data))
	if err != nil {
		return cError(err)
	}
	return cResult(cl)
}

//export PhotoUpdateDescription
func PhotoUpdateDescription(id, photoID, description *C.char) *C.char {
	if err := ready(); err != nil {
		return cError(err)
	}
	cl, err := repo.Get(context.Background(), C.GoString(id))
	if err != nil {
		return cError(err)
	}
	cl, err = repo.UpdatePhotoDescription(context.Background(), cl, C.GoString(photoID), C.GoString(description))
	if err != nil {
		return cError(err)
	}
	return cResult(cl)
}

//export PhotoDelete
func PhotoDelete(id, photoID *C.char) *C.char {
	if err := ready(); err != nil {
		return cError(err)
	}
	cl, err := repo.Get(context.Background(), C.GoString(id))
	if err != nil {
		return cError(err)
	}
	cl, err = repo.DeletePhoto(context.Background(), cl, C.GoString(photoID))
	if err != nil {
		return cError(err)
	}
	return cResult(cl)
}

//export ExportArchive
func ExportArchive(path, password *C.char) *C.char {
	if err := ready(); err != nil {
		return cError(err)
	}
	result, err := exportSvc.Export(context.Background(), C.GoString(path), C.GoString(password))
	if err != nil {
		return cError(err)
	}
	return cOK(map[string]interface{}{
		"file_path":  result.FilePath,
		"size_bytes": result.SizeBytes,
		"checklists": result.ChecklistCount,
	})
}

//export ImportArchive
func ImportArchive(path, password *C.char) *C.char {
	if err := ready(); err != nil {
		return cError(err)
	}
	result, err := exportSvc.Import(context.Background(), C.GoString(path), C.GoString(password))
	if err != nil {
		return cError(err)
	}
	return cOK(map[string]interface{}{
		"imported": result.Imported,
		"skipped":  result.Skipped,
	})
}

//export FreeString
func FreeString(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

func ready() error {
	if repo == nil {
		return apperrors.New(apperrors.ErrInternal, "core not initialized, call Init first")
	}
	return nil
}

// cResult wraps a value in {"ok":..} for the Dart side.
func cResult(v interface{}) *C.char {
	raw, err := json.Marshal(map[string]interface{}{"ok": v})
	if err != nil {
		return cError(apperrors.Wrap(apperrors.ErrInternal, "failed to encode result", err))
	}
	return C.CString(string(raw))
}

func cOK(data map[string]interface{}) *C.char {
	return cResult(data)
}

// cError encodes an error envelope carrying the AppError code so the
// Dart side can branch on it.
func cError(err error) *C.char {
	raw, _ := json.Marshal(map[string]interface{}{
		"error": map[string]interface{}{
			"code":    string(apperrors.CodeOf(err)),
			"message": err.Error(),
		},
	})
	return C.CString(string(raw))
}

func main() {
	// Main function is required for c-shared build mode
	// but is not actually executed when used as shared library
}
