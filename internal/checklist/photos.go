package checklist

import (
	"context"

	"github.com/restolog/restolog/internal/errors"
	"github.com/restolog/restolog/internal/models"
)

// AddPhoto appends a new photo with the given payload, an empty
// description and a creation timestamp, and persists through Update.
// The caller supplies the base64 payload; how the bytes were obtained
// (camera, gallery, permissions) is entirely the UI shell's concern.
func (r *Repository) AddPhoto(ctx context.Context, cl *models.VehicleChecklist, base64Data string) (*models.VehicleChecklist, error) {
	if base64Data == "" {
		return nil, errors.New(errors.ErrInvalid, "photo payload is empty")
	}

	photo := models.Photo{
		ID:         r.newID(),
		Base64Data: base64Data,
		Timestamp:  r.timestamp(),
	}
	return r.Update(ctx, cl.ID, func(c *models.VehicleChecklist) {
		c.Photos = append(c.Photos, photo)
	})
}

// UpdatePhotoDescription replaces the description of the matching
// photo. The photo's id and creation timestamp never change. An unknown
// photoID is a no-op.
func (r *Repository) UpdatePhotoDescription(ctx context.Context, cl *models.VehicleChecklist, photoID, description string) (*models.VehicleChecklist, error) {
	if !containsPhoto(cl.Photos, photoID) {
		return cl, nil
	}

	return r.Update(ctx, cl.ID, func(c *models.VehicleChecklist) {
		for i := range c.Photos {
			if c.Photos[i].ID == photoID {
				c.Photos[i].Description = description
				return
			}
		}
	})
}

// DeletePhoto removes the matching photo by filtering it out of the
// list. Idempotent: deleting an id that is not there is a no-op.
func (r *Repository) DeletePhoto(ctx context.Context, cl *models.VehicleChecklist, photoID string) (*models.VehicleChecklist, error) {
	if !containsPhoto(cl.Photos, photoID) {
		return cl, nil
	}

	return r.Update(ctx, cl.ID, func(c *models.VehicleChecklist) {
		kept := c.Photos[:0]
		for _, p := range c.Photos {
			if p.ID != photoID {
				kept = append(kept, p)
			}
		}
		c.Photos = kept
	})
}

func containsPhoto(photos []models.Photo, id string) bool {
	for i := range photos {
		if photos[i].ID == id {
			return true
		}
	}
	return false
}
