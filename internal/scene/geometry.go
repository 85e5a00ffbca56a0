package scene

import (
	"math"

	"github.com/ziadkadry99/archmap/internal/graph"
)

const (
	baseSize    = 6.0
	maxLOCBonus = 10.0
	locPerUnit  = 60.0
	activeScale = 1.3
)

// NodeSize grows with lines of code up to a cap, and by 1.3x for active
// nodes.
func NodeSize(loc float64, active bool) float64 {
	if loc < 0 || math.IsNaN(loc) {
		loc = 0
	}
	size := baseSize + math.Min(maxLOCBonus, loc/locPerUnit)
	if active {
		size *= activeScale
	}
	return size
}

// GeometryFor returns the shape drawn for a role. The mapping is the
// legend: each known role has its own primitive and everything else is a
// sphere.
func GeometryFor(role graph.Role, size float64) Geometry {
	switch role {
	case graph.RoleEntry:
		return Geometry{Kind: Octahedron, Radius: size, Detail: 1}
	case graph.RoleUI:
		s := size * 1.4
		return Geometry{Kind: Box, Width: s, Height: s, Depth: s}
	case graph.RoleLogic:
		return Geometry{Kind: Icosahedron, Radius: size}
	case graph.RoleCommand:
		return Geometry{Kind: Tetrahedron, Radius: size * 1.2}
	case graph.RoleData:
		return Geometry{
			Kind:           Cylinder,
			RadiusTop:      size * 0.8,
			RadiusBottom:   size * 0.8,
			Height:         size * 1.2,
			RadialSegments: 6,
		}
	case graph.RoleConfig:
		return Geometry{
			Kind:            Torus,
			Radius:          size * 0.7,
			Tube:            size * 0.25,
			RadialSegments:  8,
			TubularSegments: 16,
		}
	default:
		return Geometry{Kind: Sphere, Radius: size, WidthSegments: 16, HeightSegments: 16}
	}
}
