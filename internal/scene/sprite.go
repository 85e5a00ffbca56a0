package scene

import (
	"math"
	"unicode/utf8"
)

const (
	labelMaxRunes  = 24
	labelKeepRunes = 22
	labelFont      = "bold 28px system-ui, -apple-system, sans-serif"
)

// truncateLabel shortens text longer than 24 runes to 22 runes and an
// ellipsis.
func truncateLabel(text string) string {
	if utf8.RuneCountInString(text) <= labelMaxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:labelKeepRunes]) + "…"
}

// LabelSprite draws text on a 512x64 canvas shown as a 32x4 sprite.
func LabelSprite(text, color string) Part {
	return Part{
		Name: "label",
		Kind: SpritePart,
		Material: Material{
			Kind:        Sprite,
			Opacity:     1,
			Transparent: true,
			Texture: &Texture{
				Width:  512,
				Height: 64,
				Text:   truncateLabel(text),
				Font:   labelFont,
				Fill:   color,
				Alpha:  0.85,
			},
		},
		Scale: Vec3{32, 4, 1},
	}
}

// GlowSprite draws a radial halo of color fading to transparent, sized
// relative to the node.
func GlowSprite(color string, size float64) Part {
	return Part{
		Name: "glow",
		Kind: SpritePart,
		Material: Material{
			Kind:        Sprite,
			Opacity:     1,
			Transparent: true,
			Blending:    AdditiveBlending,
			Texture: &Texture{
				Width:  128,
				Height: 128,
				Gradient: []GradientStop{
					{0, withAlpha(color, "AA")},
					{0.3, withAlpha(color, "44")},
					{1, withAlpha(color, "00")},
				},
			},
		},
		Scale: Vec3{size * 4, size * 4, 1},
	}
}

// SelectionRing is the flat ring drawn around a selected node.
func SelectionRing(size float64) Part {
	return Part{
		Name: "ring",
		Kind: MeshPart,
		Geometry: &Geometry{
			Kind:          Ring,
			InnerRadius:   size * 1.8,
			OuterRadius:   size * 2,
			ThetaSegments: 32,
		},
		Material: Material{
			Kind:        Basic,
			Color:       "#CCFF00",
			Opacity:     0.4,
			Transparent: true,
			DepthWrite:  true,
			DoubleSided: true,
		},
		Scale:    unit,
		Rotation: Vec3{X: math.Pi / 2},
	}
}
