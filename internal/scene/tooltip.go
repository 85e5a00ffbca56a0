package scene

import (
	"html/template"
	"strings"

	"github.com/ziadkadry99/archmap/internal/graph"
)

var tooltipTmpl = template.Must(template.New("tooltip").Parse(`<div class="node-tooltip">` +
	`<div class="node-tooltip-name" style="color: {{.Color}};">{{.Name}}</div>` +
	`<div class="node-tooltip-id">{{.ID}}</div>` +
	`{{if gt .LOC 0.0}}<div class="node-tooltip-loc">{{.LOC}} LOC</div>{{end}}` +
	`</div>`))

// Tooltip renders the hover card for a node as escaped HTML.
func Tooltip(n *graph.RenderNode) (string, error) {
	var b strings.Builder
	err := tooltipTmpl.Execute(&b, struct {
		Name, ID string
		Color    template.CSS
		LOC      float64
	}{
		Name:  n.Name,
		ID:    n.ID,
		Color: template.CSS(normalizeColor(n.Color)),
		LOC:   n.LOC,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
