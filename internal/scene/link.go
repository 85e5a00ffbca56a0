package scene

import (
	"github.com/ziadkadry99/archmap/internal/graph"
	"github.com/ziadkadry99/archmap/internal/report"
)

// LinkOpacity is the base opacity of every link.
const LinkOpacity = 0.4

// LinkStyle is how one link is drawn.
type LinkStyle struct {
	Source      string  `json:"source"`
	Target      string  `json:"target"`
	Color       string  `json:"color"`
	Width       float64 `json:"width"`
	Highlighted bool    `json:"highlighted"`
}

// StyleLink highlights links touching activeID. An empty activeID
// highlights nothing.
func StyleLink(l graph.RenderLink, activeID string) LinkStyle {
	src, dst := report.ResolveID(l.Source), report.ResolveID(l.Target)
	st := LinkStyle{
		Source: src,
		Target: dst,
		Color:  rgba(highlightColor, 0.1),
		Width:  0.5,
	}
	if activeID != "" && (src == activeID || dst == activeID) {
		st.Color = rgba("#CCFF00", 0.8)
		st.Width = 2.5
		st.Highlighted = true
	}
	return st
}
