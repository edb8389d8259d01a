package models

import "encoding/json"

// ChecklistItem represents a single completable entry in one of the four
// task-like lists of a checklist.
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	// CompletedAt is set when Completed flips to true and cleared when it
	// flips back. Present if and only if Completed is true.
	CompletedAt string `json:"completed_at,omitempty"`
}

// Toggle flips the completion state, stamping or clearing CompletedAt.
func (i *ChecklistItem) Toggle(now string) {
	i.Completed = !i.Completed
	if i.Completed {
		i.CompletedAt = now
	} else {
		i.CompletedAt = ""
	}
}

// Photo represents an embedded image attached to a checklist.
type Photo struct {
	ID          string `json:"id"`
	Base64Data  string `json:"base64_data"`
	Description string `json:"description"`
	// Timestamp is the creation time and never changes afterwards.
	Timestamp string `json:"timestamp"`
}

// VehicleChecklist is the aggregate record for one vehicle: specs, the
// four parallel item lists, and attached photos.
type VehicleChecklist struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	VehicleInfo    VehicleInfo     `json:"vehicle_info"`
	EngineInfo     EngineInfo      `json:"engine_info"`
	Tasks          []ChecklistItem `json:"tasks"`
	PartsToInstall []ChecklistItem `json:"parts_to_install"`
	Maintenance    []ChecklistItem `json:"maintenance"`
	ResearchItems  []ChecklistItem `json:"research_items"`
	Photos         []Photo         `json:"photos"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

// ChecklistSummary is the projection of a VehicleChecklist kept in the
// index collection, so the list screen never deserializes photo payloads.
type ChecklistSummary struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	VehicleInfo VehicleInfo `json:"vehicle_info"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
}

// Summary returns the index projection of the checklist.
func (c *VehicleChecklist) Summary() ChecklistSummary {
	return ChecklistSummary{
		ID:          c.ID,
		Title:       c.Title,
		VehicleInfo: c.VehicleInfo,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// Touch refreshes UpdatedAt. The stamp never moves backwards even if the
// wall clock does; RFC 3339 strings compare correctly as strings.
func (c *VehicleChecklist) Touch(now string) {
	if now > c.UpdatedAt {
		c.UpdatedAt = now
	}
}

// Normalize replaces nil lists with empty ones so records always
// serialize with explicit arrays.
func (c *VehicleChecklist) Normalize() {
	if c.Tasks == nil {
		c.Tasks = []ChecklistItem{}
	}
	if c.PartsToInstall == nil {
		c.PartsToInstall = []ChecklistItem{}
	}
	if c.Maintenance == nil {
		c.Maintenance = []ChecklistItem{}
	}
	if c.ResearchItems == nil {
		c.ResearchItems = []ChecklistItem{}
	}
	if c.Photos == nil {
		c.Photos = []Photo{}
	}
}

// UnmarshalJSON decodes a stored checklist record tolerantly. Records
// written by older app versions nested the vehicle and engine objects
// under camelCase keys (vehicleInfo / engineInfo); both shapes decode
// into the one canonical in-memory type, and the next save persists the
// canonical snake_case shape. Consumers never see the legacy shape.
func (c *VehicleChecklist) UnmarshalJSON(data []byte) error {
	type alias VehicleChecklist
	aux := struct {
		*alias
		LegacyVehicleInfo *VehicleInfo `json:"vehicleInfo"`
		LegacyEngineInfo  *EngineInfo  `json:"engineInfo"`
		CanonVehicleInfo  *VehicleInfo `json:"vehicle_info"`
		CanonEngineInfo   *EngineInfo  `json:"engine_info"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch {
	case aux.CanonVehicleInfo != nil:
		c.VehicleInfo = *aux.CanonVehicleInfo
	case aux.LegacyVehicleInfo != nil:
		c.VehicleInfo = *aux.LegacyVehicleInfo
	default:
		c.VehicleInfo = VehicleInfo{}
	}
	switch {
	case aux.CanonEngineInfo != nil:
		c.EngineInfo = *aux.CanonEngineInfo
	case aux.LegacyEngineInfo != nil:
		c.EngineInfo = *aux.LegacyEngineInfo
	default:
		c.EngineInfo = EngineInfo{}
	}
	c.Normalize()
	return nil
}

// UnmarshalJSON decodes an index entry with the same container-key
// tolerance as the full record.
func (s *ChecklistSummary) UnmarshalJSON(data []byte) error {
	type alias ChecklistSummary
	aux := struct {
		*alias
		LegacyVehicleInfo *VehicleInfo `json:"vehicleInfo"`
		CanonVehicleInfo  *VehicleInfo `json:"vehicle_info"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch {
	case aux.CanonVehicleInfo != nil:
		s.VehicleInfo = *aux.CanonVehicleInfo
	case aux.LegacyVehicleInfo != nil:
		s.VehicleInfo = *aux.LegacyVehicleInfo
	default:
		s.VehicleInfo = VehicleInfo{}
	}
	return nil
}
