package graph

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Role is the semantic role of a module in the analyzed project.
type Role string

const (
	RoleEntry   Role = "entry"
	RoleLogic   Role = "logic"
	RoleCommand Role = "command"
	RoleUI      Role = "ui"
	RoleData    Role = "data"
	RoleConfig  Role = "config"
	RoleUnknown Role = "unknown"
)

// rule matches either the full slash-separated path or only its final
// segment.
type rule struct {
	role     Role
	patterns []string
	basename bool
}

// rules are evaluated in order; the first match wins.
var rules = []rule{
	{role: RoleUI, patterns: []string{"**/components/**", "**/ui/**"}},
	{role: RoleLogic, patterns: []string{"**/api/**", "**/utils/**", "**/hooks/**", "**/lib/**", "**/analyzer/**"}},
	{role: RoleEntry, basename: true, patterns: []string{"page.*", "layout.*", "index.*", "route.*"}},
	{role: RoleCommand, patterns: []string{"**/commands/**", "**/cmd/**"}},
	{role: RoleData, patterns: []string{
		"**/types/**", "**/types.*", "**/*.types.*",
		"**/data/**", "**/models/**", "**/model/**",
		"**/schema/**", "**/schema.*", "**/*.schema.*",
	}},
	{role: RoleConfig, basename: true, patterns: []string{
		"*.json", "*.config.ts", "*.config.js", "*.config.mjs", "*.yml", "*.yaml", "*.toml",
	}},
}

// Classify infers a role from a file path. It is total: paths that match
// no rule are RoleUnknown.
func Classify(id string) Role {
	p := strings.ReplaceAll(id, `\`, "/")
	base := path.Base(p)
	for _, r := range rules {
		subject := p
		if r.basename {
			subject = base
		}
		for _, pat := range r.patterns {
			if ok, _ := doublestar.Match(pat, subject); ok {
				return r.role
			}
		}
	}
	return RoleUnknown
}

var colors = map[Role]string{
	RoleEntry:   "#5B9CFF",
	RoleLogic:   "#9F7AEA",
	RoleCommand: "#CCFF00",
	RoleUI:      "#FF6B6B",
	RoleData:    "#FFB84C",
	RoleConfig:  "#4ECDC4",
	RoleUnknown: "#8892B0",
}

// ColorOf returns the display colour of a role. Unrecognised roles get the
// unknown colour.
func ColorOf(role Role) string {
	if c, ok := colors[role]; ok {
		return c
	}
	return colors[RoleUnknown]
}

// LegendEntry is one row of the role legend.
type LegendEntry struct {
	Role  Role   `json:"role"`
	Label string `json:"label"`
	Color string `json:"color"`
	Shape string `json:"shape"`
}

// Legend lists the known roles in display order.
func Legend() []LegendEntry {
	return []LegendEntry{
		{RoleEntry, "Entry", ColorOf(RoleEntry), "octahedron"},
		{RoleLogic, "Logic", ColorOf(RoleLogic), "icosahedron"},
		{RoleCommand, "Command", ColorOf(RoleCommand), "tetrahedron"},
		{RoleUI, "UI", ColorOf(RoleUI), "cube"},
		{RoleData, "Data", ColorOf(RoleData), "cylinder"},
		{RoleConfig, "Config", ColorOf(RoleConfig), "torus"},
	}
}
