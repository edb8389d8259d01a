// Package handlers provides unit tests for the desktop REST API.
package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/restolog/restolog/internal/checklist"
	"github.com/restolog/restolog/internal/kv"
	"github.com/restolog/restolog/internal/models"
)

func setupServer(t *testing.T) (*httptest.Server, *checklist.Repository) {
	t.Helper()
	repo := checklist.NewRepository(kv.NewMemory())

	checklistHandler := NewChecklistHandler(repo, NopNotifier{})
	itemHandler := NewItemHandler(repo, NopNotifier{})
	photoHandler := NewPhotoHandler(repo, NopNotifier{})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /checklists", checklistHandler.List)
	mux.HandleFunc("POST /checklists", checklistHandler.Create)
	mux.HandleFunc("GET /checklists/{id}", checklistHandler.Get)
	mux.HandleFunc("DELETE /checklists/{id}", checklistHandler.Delete)
	mux.HandleFunc("POST /checklists/{id}/items", itemHandler.Append)
	mux.HandleFunc("POST /checklists/{id}/items/{itemID}/toggle", itemHandler.Toggle)
	mux.HandleFunc("POST /checklists/{id}/photos", photoHandler.Add)
	mux.HandleFunc("GET /checklists/{id}/photos/{photoID}/thumbnail", photoHandler.Thumbnail)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, repo
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func TestCreateAndGetChecklist(t *testing.T) {
	server, _ := setupServer(t)

	resp := postJSON(t, server.URL+"/checklists", map[string]interface{}{
		"vehicle_info": map[string]string{"make": "Toyota", "model": "Camry", "year": "2023"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	var created models.VehicleChecklist
	decodeBody(t, resp, &created)
	if created.Title != "2023 Toyota Camry" {
		t.Errorf("Expected derived title, got %q", created.Title)
	}

	resp, err := http.Get(server.URL + "/checklists/" + created.ID)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var got models.VehicleChecklist
	decodeBody(t, resp, &got)
	if got.ID != created.ID || got.VehicleInfo.Make != "Toyota" {
		t.Errorf("Unexpected checklist: %+v", got)
	}
}

func TestGetMissingChecklist(t *testing.T) {
	server, _ := setupServer(t)

	resp, err := http.Get(server.URL + "/checklists/ghost")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", resp.StatusCode)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, resp, &envelope)
	if envelope.Error.Code != "NOT_FOUND" {
		t.Errorf("Expected NOT_FOUND code, got %q", envelope.Error.Code)
	}
}

func TestItemAppendAndToggle(t *testing.T) {
	server, _ := setupServer(t)

	resp := postJSON(t, server.URL+"/checklists", map[string]interface{}{"title": "Build"})
	var cl models.VehicleChecklist
	decodeBody(t, resp, &cl)

	resp = postJSON(t, fmt.Sprintf("%s/checklists/%s/items", server.URL, cl.ID), map[string]string{
		"list": "tasks",
		"text": "Replace timing belt",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &cl)
	if len(cl.Tasks) != 1 || cl.Tasks[0].Completed {
		t.Fatalf("Unexpected tasks: %+v", cl.Tasks)
	}

	resp = postJSON(t, fmt.Sprintf("%s/checklists/%s/items/%s/toggle?list=tasks", server.URL, cl.ID, cl.Tasks[0].ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &cl)
	if !cl.Tasks[0].Completed || cl.Tasks[0].CompletedAt == "" {
		t.Errorf("Expected completed task: %+v", cl.Tasks[0])
	}

	resp = postJSON(t, fmt.Sprintf("%s/checklists/%s/items", server.URL, cl.ID), map[string]string{
		"list": "wishlist",
		"text": "Turbo kit",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown list, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestPhotoAddRejectsNonImage(t *testing.T) {
	server, _ := setupServer(t)

	resp := postJSON(t, server.URL+"/checklists", map[string]interface{}{"title": "Build"})
	var cl models.VehicleChecklist
	decodeBody(t, resp, &cl)

	resp = postJSON(t, fmt.Sprintf("%s/checklists/%s/photos", server.URL, cl.ID), map[string]string{
		"base64_data": base64.StdEncoding.EncodeToString([]byte("not an image")),
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", resp.StatusCode)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, resp, &envelope)
	if envelope.Error.Code != "MEDIA_INVALID" {
		t.Errorf("Expected MEDIA_INVALID code, got %q", envelope.Error.Code)
	}
}

func TestPhotoThumbnail(t *testing.T) {
	server, _ := setupServer(t)

	resp := postJSON(t, server.URL+"/checklists", map[string]interface{}{"title": "Build"})
	var cl models.VehicleChecklist
	decodeBody(t, resp, &cl)

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: 20, G: 90, B: 160, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}

	resp = postJSON(t, fmt.Sprintf("%s/checklists/%s/photos", server.URL, cl.ID), map[string]string{
		"base64_data": base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &cl)
	if len(cl.Photos) != 1 {
		t.Fatalf("Expected 1 photo, got %d", len(cl.Photos))
	}

	resp, err := http.Get(fmt.Sprintf("%s/checklists/%s/photos/%s/thumbnail?w=16&h=16", server.URL, cl.ID, cl.Photos[0].ID))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Expected image/jpeg, got %q", ct)
	}
}
