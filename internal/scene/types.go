package scene

// State is the interaction state a node is drawn in.
type State struct {
	Selected bool `json:"selected"`
	Active   bool `json:"active"`
	Dimmed   bool `json:"dimmed"`
}

// Vec3 is a position, scale or rotation triple.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// GeometryKind names a primitive shape.
type GeometryKind string

const (
	Octahedron  GeometryKind = "octahedron"
	Box         GeometryKind = "box"
	Icosahedron GeometryKind = "icosahedron"
	Tetrahedron GeometryKind = "tetrahedron"
	Cylinder    GeometryKind = "cylinder"
	Torus       GeometryKind = "torus"
	Sphere      GeometryKind = "sphere"
	Ring        GeometryKind = "ring"
)

// Geometry describes a primitive. Only the fields its Kind uses are set.
type Geometry struct {
	Kind GeometryKind `json:"kind"`

	Radius       float64 `json:"radius,omitempty"`
	Detail       int     `json:"detail,omitempty"`
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	Depth        float64 `json:"depth,omitempty"`
	RadiusTop    float64 `json:"radiusTop,omitempty"`
	RadiusBottom float64 `json:"radiusBottom,omitempty"`
	Tube         float64 `json:"tube,omitempty"`
	InnerRadius  float64 `json:"innerRadius,omitempty"`
	OuterRadius  float64 `json:"outerRadius,omitempty"`

	RadialSegments  int `json:"radialSegments,omitempty"`
	TubularSegments int `json:"tubularSegments,omitempty"`
	WidthSegments   int `json:"widthSegments,omitempty"`
	HeightSegments  int `json:"heightSegments,omitempty"`
	ThetaSegments   int `json:"thetaSegments,omitempty"`
}

// MaterialKind names a material model.
type MaterialKind string

const (
	Physical MaterialKind = "physical"
	Basic    MaterialKind = "basic"
	Sprite   MaterialKind = "sprite"
)

// Blending modes.
const (
	NormalBlending   = "normal"
	AdditiveBlending = "additive"
)

// Material describes how a part is shaded.
type Material struct {
	Kind        MaterialKind `json:"kind"`
	Color       string       `json:"color,omitempty"`
	Opacity     float64      `json:"opacity"`
	Transparent bool         `json:"transparent"`
	DepthWrite  bool         `json:"depthWrite"`
	Blending    string       `json:"blending,omitempty"`
	Wireframe   bool         `json:"wireframe,omitempty"`
	DoubleSided bool         `json:"doubleSided,omitempty"`

	Emissive           string  `json:"emissive,omitempty"`
	EmissiveIntensity  float64 `json:"emissiveIntensity,omitempty"`
	Roughness          float64 `json:"roughness,omitempty"`
	Metalness          float64 `json:"metalness,omitempty"`
	Clearcoat          float64 `json:"clearcoat,omitempty"`
	ClearcoatRoughness float64 `json:"clearcoatRoughness,omitempty"`

	Texture *Texture `json:"texture,omitempty"`
}

// GradientStop is one stop of a radial gradient.
type GradientStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// Texture is a canvas-drawn texture: either centred text or a radial
// gradient filling the canvas.
type Texture struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Text   string  `json:"text,omitempty"`
	Font   string  `json:"font,omitempty"`
	Fill   string  `json:"fill,omitempty"`
	Alpha  float64 `json:"alpha,omitempty"`

	Gradient []GradientStop `json:"gradient,omitempty"`
}

// PartKind distinguishes meshes from camera-facing sprites.
type PartKind string

const (
	MeshPart   PartKind = "mesh"
	SpritePart PartKind = "sprite"
)

// Part is one drawable inside a node object.
type Part struct {
	Name     string    `json:"name"`
	Kind     PartKind  `json:"kind"`
	Geometry *Geometry `json:"geometry,omitempty"`
	Material Material  `json:"material"`
	Position Vec3      `json:"position"`
	Scale    Vec3      `json:"scale"`
	Rotation Vec3      `json:"rotation"`
}

// Object is the complete drawable for one node, positioned by the layout.
type Object struct {
	NodeID string  `json:"nodeId"`
	Size   float64 `json:"size"`
	State  State   `json:"state"`
	Parts  []Part  `json:"parts"`
}

// Part returns the named part, or nil.
func (o Object) Part(name string) *Part {
	for i := range o.Parts {
		if o.Parts[i].Name == name {
			return &o.Parts[i]
		}
	}
	return nil
}

var unit = Vec3{1, 1, 1}
