package catalog

import (
	"errors"
	"math"
	"strconv"
)

// PriceRange is an inclusive [Min, Max] bound on product price.
type PriceRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

func (r PriceRange) Contains(price float64) bool {
	return r.Min <= price && price <= r.Max
}

func (r PriceRange) Valid() bool {
	return r.Min >= 0 && r.Min <= r.Max
}

type Preset struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Range PriceRange `json:"range"`
}

const DefaultPresetID = "any"

// AnyPrice is the default range. It covers every catalog price.
var AnyPrice = PriceRange{Min: 0, Max: 600}

var presets = []Preset{
	{ID: "60-100", Label: "60-100$", Range: PriceRange{Min: 60, Max: 100}},
	{ID: "100-200", Label: "100-200$", Range: PriceRange{Min: 100, Max: 200}},
	{ID: DefaultPresetID, Label: "Any", Range: AnyPrice},
}

// Presets returns the selectable price ranges in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

func PresetByID(id string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// PresetFor returns the preset whose range equals r, if any.
func PresetFor(r PriceRange) (Preset, bool) {
	for _, p := range presets {
		if p.Range == r {
			return p, true
		}
	}
	return Preset{}, false
}

// NextPreset returns the preset after the one matching r, wrapping around.
// A range that matches no preset yields the first preset.
func NextPreset(r PriceRange) Preset {
	for i, p := range presets {
		if p.Range == r {
			return presets[(i+1)%len(presets)]
		}
	}
	return presets[0]
}

var ErrBadPriceRange = errors.New("bad price range")

// ParseRange resolves a range from either a preset id or explicit bounds.
// An empty preset with empty bounds yields AnyPrice.
func ParseRange(preset, min, max string) (PriceRange, error) {
	if preset != "" && (min != "" || max != "") {
		return PriceRange{}, ErrBadPriceRange
	}
	if preset != "" {
		p, ok := PresetByID(preset)
		if !ok {
			return PriceRange{}, ErrBadPriceRange
		}
		return p.Range, nil
	}
	if min == "" && max == "" {
		return AnyPrice, nil
	}

	r := AnyPrice
	if min != "" {
		v, err := parseBound(min)
		if err != nil {
			return PriceRange{}, err
		}
		r.Min = v
	}
	if max != "" {
		v, err := parseBound(max)
		if err != nil {
			return PriceRange{}, err
		}
		r.Max = v
	}
	if !r.Valid() {
		return PriceRange{}, ErrBadPriceRange
	}
	return r, nil
}

// parseBound accepts finite numbers only, so a range always encodes as JSON.
func parseBound(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrBadPriceRange
	}
	return v, nil
}
