package scene

import "github.com/ziadkadry99/archmap/internal/graph"

const (
	labelLift      = 6.0
	wireframeScale = 1.08
)

// Build assembles the drawable for one node. Dimmed nodes keep only their
// core mesh; the label, wireframe and glow are dropped. Selected nodes gain
// a ring. The node's layout position is never read or written.
func Build(n *graph.RenderNode, s State) Object {
	color := normalizeColor(n.Color)
	size := NodeSize(n.LOC, s.Active)
	geo := GeometryFor(n.Type, size)

	obj := Object{NodeID: n.ID, Size: size, State: s}

	if !s.Dimmed {
		labelColor := withAlpha(color, "CC")
		if s.Active {
			labelColor = highlightColor
		}
		label := LabelSprite(n.Name, labelColor)
		label.Position = Vec3{Y: size + labelLift}
		obj.Parts = append(obj.Parts, label)
	}

	core := geo
	obj.Parts = append(obj.Parts, Part{
		Name:     "core",
		Kind:     MeshPart,
		Geometry: &core,
		Material: MaterialFor(color, s),
		Scale:    unit,
	})

	if !s.Dimmed {
		wire := geo
		obj.Parts = append(obj.Parts, Part{
			Name:     "wireframe",
			Kind:     MeshPart,
			Geometry: &wire,
			Material: WireframeFor(color, s),
			Scale:    Vec3{wireframeScale, wireframeScale, wireframeScale},
		})

		glow := GlowSprite(color, size)
		glow.Material.Opacity = 0.25
		if s.Active {
			glow.Material.Opacity = 0.7
		}
		obj.Parts = append(obj.Parts, glow)
	}

	if s.Selected {
		obj.Parts = append(obj.Parts, SelectionRing(size))
	}
	return obj
}
