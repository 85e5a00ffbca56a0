package scene

const (
	glowIntensity   = 0.35
	activeIntensity = 0.6
	idleOpacity     = 0.85
	dimOpacity      = 0.15
	highlightColor  = "#ffffff"
)

// MaterialFor returns the core material of a node.
func MaterialFor(color string, s State) Material {
	color = normalizeColor(color)
	m := Material{
		Kind:               Physical,
		Color:              color,
		Emissive:           color,
		Transparent:        true,
		DepthWrite:         true,
		Opacity:            idleOpacity,
		EmissiveIntensity:  glowIntensity,
		Roughness:          0.15,
		Metalness:          0.6,
		Clearcoat:          1,
		ClearcoatRoughness: 0.1,
	}
	if s.Dimmed {
		m.Opacity = dimOpacity
	}
	if s.Active {
		m.EmissiveIntensity = activeIntensity
	}
	if s.Selected {
		m.Color = highlightColor
		m.Emissive = highlightColor
		m.Opacity = 1
	}
	return m
}

// WireframeFor returns the translucent overlay material.
func WireframeFor(color string, s State) Material {
	m := Material{
		Kind:        Basic,
		Color:       normalizeColor(color),
		Wireframe:   true,
		Transparent: true,
		DepthWrite:  true,
		Opacity:     0.12,
	}
	if s.Active {
		m.Opacity = 0.5
	}
	if s.Selected {
		m.Color = highlightColor
	}
	return m
}
