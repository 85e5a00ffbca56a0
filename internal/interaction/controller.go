package interaction

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ziadkadry99/archmap/internal/graph"
	"github.com/ziadkadry99/archmap/internal/scene"
)

// Options configures a Controller. Zero values take the defaults.
type Options struct {
	Standoff      float64
	FrameDuration time.Duration
	ResetDuration time.Duration
	FitDuration   time.Duration
	FitPadding    float64
	DefaultLayout LayoutID
	Logger        *log.Logger
}

func (o *Options) applyDefaults() {
	if o.Standoff <= 0 {
		o.Standoff = 40
	}
	if o.FrameDuration <= 0 {
		o.FrameDuration = time.Second
	}
	if o.ResetDuration <= 0 {
		o.ResetDuration = time.Second
	}
	if o.FitDuration <= 0 {
		o.FitDuration = 600 * time.Millisecond
	}
	if o.FitPadding <= 0 {
		o.FitPadding = 60
	}
	if _, err := LookupLayout(o.DefaultLayout); err != nil {
		o.DefaultLayout = LayoutForce
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// State is the session's selection, hover and layout. Empty ids mean none.
type State struct {
	Selected string   `json:"selected,omitempty"`
	Hovered  string   `json:"hovered,omitempty"`
	Layout   LayoutID `json:"layout"`
}

// Focus returns the selection and hover as a scene focus.
func (s State) Focus() scene.Focus {
	return scene.Focus{Selected: s.Selected, Hovered: s.Hovered}
}

// Controller owns interaction state and drives the camera.
type Controller struct {
	camera CameraDriver
	opts   Options

	mu    sync.Mutex
	state State
}

// New creates a Controller with nothing selected and the default layout.
func New(camera CameraDriver, opts Options) *Controller {
	opts.applyDefaults()
	return &Controller{
		camera: camera,
		opts:   opts,
		state:  State{Layout: opts.DefaultLayout},
	}
}

// Click toggles selection of n. Selecting a node also frames it.
func (c *Controller) Click(n *graph.RenderNode) {
	if n == nil {
		return
	}
	c.mu.Lock()
	if c.state.Selected == n.ID {
		c.state.Selected = ""
		c.mu.Unlock()
		c.opts.Logger.Debug("node deselected", "id", n.ID)
		return
	}
	c.state.Selected = n.ID
	c.mu.Unlock()

	pos := nodePosition(n)
	c.camera.MoveCamera(FramePosition(pos, c.opts.Standoff), pos, c.opts.FrameDuration)
	c.opts.Logger.Debug("node selected", "id", n.ID)
}

// Hover records the node under the pointer; nil clears it.
func (c *Controller) Hover(n *graph.RenderNode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n == nil {
		c.state.Hovered = ""
		return
	}
	c.state.Hovered = n.ID
}

// ResetCamera returns to the default pose and clears the selection. Hover
// is kept.
func (c *Controller) ResetCamera() {
	c.mu.Lock()
	c.state.Selected = ""
	c.mu.Unlock()
	c.camera.MoveCamera(DefaultPose, origin, c.opts.ResetDuration)
}

// ZoomToFit frames the whole graph.
func (c *Controller) ZoomToFit() {
	c.camera.ZoomToFit(c.opts.FitDuration, c.opts.FitPadding)
}

// ChangeLayout switches the layout preset. Selection and hover are kept.
func (c *Controller) ChangeLayout(id LayoutID) error {
	if _, err := LookupLayout(id); err != nil {
		return err
	}
	c.mu.Lock()
	c.state.Layout = id
	c.mu.Unlock()
	c.opts.Logger.Debug("layout changed", "layout", id)
	return nil
}

// Layout returns the active preset.
func (c *Controller) Layout() Layout {
	c.mu.Lock()
	id := c.state.Layout
	c.mu.Unlock()
	l, _ := LookupLayout(id)
	return l
}

// Reload resets the session for a newly loaded graph.
func (c *Controller) Reload() {
	c.mu.Lock()
	c.state = State{Layout: c.opts.DefaultLayout}
	c.mu.Unlock()
}

// State returns a snapshot of the interaction state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ActiveID is the selected id, else the hovered id, else empty.
func (c *Controller) ActiveID() string {
	return c.State().Focus().ActiveID()
}

// Highlight is the connectivity view for the active node.
type Highlight struct {
	Active    string
	Neighbors map[string]struct{}
}

// Dimmed reports whether id should be drawn dimmed. Nothing is dimmed when
// no node is active.
func (h Highlight) Dimmed(id string) bool {
	if h.Active == "" {
		return false
	}
	_, ok := h.Neighbors[id]
	return !ok
}

// Highlight computes which nodes of g stay lit.
func (c *Controller) Highlight(g *graph.Graph) Highlight {
	active := c.ActiveID()
	if active == "" {
		return Highlight{}
	}
	return Highlight{Active: active, Neighbors: graph.NeighborsOf(active, g.Links)}
}

// Scene draws g for the current state.
func (c *Controller) Scene(g *graph.Graph) scene.Scene {
	return scene.BuildScene(g, c.State().Focus())
}

// SettleFit repeats ZoomToFit every interval while the layout settles,
// stopping after attempts fits or when ctx is done.
func (c *Controller) SettleFit(ctx context.Context, attempts int, interval time.Duration) error {
	if attempts <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 0; i < attempts; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.ZoomToFit()
		}
	}
	return nil
}

func nodePosition(n *graph.RenderNode) r3.Vec {
	if !n.Placed() {
		return origin
	}
	return r3.Vec{X: *n.X, Y: *n.Y, Z: *n.Z}
}
