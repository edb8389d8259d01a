// Package models provides data model definitions for the RestoLog core.
package models

import "encoding/json"

// VehicleInfo holds the recorded specifications of a vehicle. Every field
// is a free-form string; the app never validates beyond presence.
type VehicleInfo struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Series       string `json:"series"`
	Year         string `json:"year"`
	BodyType     string `json:"bodyType"`
	Doors        string `json:"doors"`
	Assembly     string `json:"assembly"`
	Licensing    string `json:"licensing"`
	PurchaseDate string `json:"purchaseDate"`
	VIN          string `json:"vin"`
	BuildDate    string `json:"buildDate"`
	TrimCode     string `json:"trimCode"`
	OptionCode   string `json:"optionCode"`
	Odometer     string `json:"odometer"`
	PaintColor   string `json:"paintColor"`
	Engine       string `json:"engine"`
	Transmission string `json:"transmission"`
	Drive        string `json:"drive"`
	Layout       string `json:"layout"`
	RimSize      string `json:"rimSize"`
	TyreSize     string `json:"tyreSize"`
	Weight       string `json:"weight"`
	Wheelbase    string `json:"wheelbase"`
	Length       string `json:"length"`
	Height       string `json:"height"`
	Width        string `json:"width"`
}

// EngineInfo holds the recorded engine specifications.
type EngineInfo struct {
	EngineNumber     string `json:"engineNumber"`
	EngineCode       string `json:"engineCode"`
	Description      string `json:"description"`
	Bore             string `json:"bore"`
	Stroke           string `json:"stroke"`
	CompressionRatio string `json:"compressionRatio"`
	Power            string `json:"power"`
	Torque           string `json:"torque"`
}

// fieldReader reads string fields out of a loosely-typed JSON object,
// trying each candidate key in order. Records written by older app
// versions used snake_case keys inside the vehicle and engine objects;
// missing or mistyped fields default to the empty string instead of failing.
type fieldReader map[string]json.RawMessage

func (r fieldReader) str(keys ...string) string {
	for _, k := range keys {
		msg, ok := r[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(msg, &s); err == nil {
			return s
		}
	}
	return ""
}

// UnmarshalJSON decodes VehicleInfo permissively, accepting both the
// canonical camelCase keys and the legacy snake_case alternates.
func (v *VehicleInfo) UnmarshalJSON(data []byte) error {
	var raw fieldReader
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.Make = raw.str("make")
	v.Model = raw.str("model")
	v.Series = raw.str("series")
	v.Year = raw.str("year")
	v.BodyType = raw.str("bodyType", "body_type")
	v.Doors = raw.str("doors")
	v.Assembly = raw.str("assembly")
	v.Licensing = raw.str("licensing")
	v.PurchaseDate = raw.str("purchaseDate", "purchase_date")
	v.VIN = raw.str("vin")
	v.BuildDate = raw.str("buildDate", "build_date")
	v.TrimCode = raw.str("trimCode", "trim_code")
	v.OptionCode = raw.str("optionCode", "option_code")
	v.Odometer = raw.str("odometer")
	v.PaintColor = raw.str("paintColor", "paint_color")
	v.Engine = raw.str("engine")
	v.Transmission = raw.str("transmission")
	v.Drive = raw.str("drive")
	v.Layout = raw.str("layout")
	v.RimSize = raw.str("rimSize", "rim_size")
	v.TyreSize = raw.str("tyreSize", "tyre_size")
	v.Weight = raw.str("weight")
	v.Wheelbase = raw.str("wheelbase")
	v.Length = raw.str("length")
	v.Height = raw.str("height")
	v.Width = raw.str("width")
	return nil
}

// UnmarshalJSON decodes EngineInfo permissively, same rules as VehicleInfo.
func (e *EngineInfo) UnmarshalJSON(data []byte) error {
	var raw fieldReader
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.EngineNumber = raw.str("engineNumber", "engine_number")
	e.EngineCode = raw.str("engineCode", "engine_code")
	e.Description = raw.str("description")
	e.Bore = raw.str("bore")
	e.Stroke = raw.str("stroke")
	e.CompressionRatio = raw.str("compressionRatio", "compression_ratio")
	e.Power = raw.str("power")
	e.Torque = raw.str("torque")
	return nil
}
