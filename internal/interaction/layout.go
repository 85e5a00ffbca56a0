package interaction

import (
	"errors"
	"fmt"
)

// ErrUnknownLayout is returned for a layout id that is not a preset.
var ErrUnknownLayout = errors.New("unknown layout")

// LayoutID names a layout preset.
type LayoutID string

const (
	LayoutForce     LayoutID = "force"
	LayoutTopDown   LayoutID = "td"
	LayoutLeftRight LayoutID = "lr"
	LayoutZLayers   LayoutID = "zout"
	LayoutRadial    LayoutID = "radialout"
)

// Layout is a preset handed to the layout engine. DagMode is empty for the
// free force-directed layout.
type Layout struct {
	ID      LayoutID `json:"id"`
	Label   string   `json:"label"`
	DagMode string   `json:"dagMode,omitempty"`
	Icon    string   `json:"icon"`
}

// Simulation holds the layout engine parameters shared by every preset.
type Simulation struct {
	DagLevelDistance float64 `json:"dagLevelDistance"`
	AlphaDecay       float64 `json:"alphaDecay"`
	VelocityDecay    float64 `json:"velocityDecay"`
}

// DefaultSimulation is the engine configuration used for every layout.
var DefaultSimulation = Simulation{
	DagLevelDistance: 40,
	AlphaDecay:       0.02,
	VelocityDecay:    0.3,
}

var layouts = []Layout{
	{ID: LayoutForce, Label: "Force Directed", Icon: "◎"},
	{ID: LayoutTopDown, Label: "Top-Down", DagMode: "td", Icon: "↓"},
	{ID: LayoutLeftRight, Label: "Left → Right", DagMode: "lr", Icon: "→"},
	{ID: LayoutZLayers, Label: "Z-Layers", DagMode: "zout", Icon: "◈"},
	{ID: LayoutRadial, Label: "Radial", DagMode: "radialout", Icon: "◉"},
}

// Layouts returns the presets in menu order.
func Layouts() []Layout {
	out := make([]Layout, len(layouts))
	copy(out, layouts)
	return out
}

// LookupLayout returns the preset with the given id.
func LookupLayout(id LayoutID) (Layout, error) {
	for _, l := range layouts {
		if l.ID == id {
			return l, nil
		}
	}
	return Layout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, id)
}
