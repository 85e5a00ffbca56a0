package report

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Report is the analysis payload produced by the external analyzer. Only
// the fields below are read; the submitted bytes are kept verbatim so that
// readers get back exactly what was submitted.
type Report struct {
	ProjectName  string        `json:"projectName" validate:"required"`
	Dependencies *Dependencies `json:"dependencies" validate:"required"`
	Stats        *Stats        `json:"stats,omitempty"`

	raw []byte
}

// Dependencies is the module dependency graph of the analyzed project.
type Dependencies struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Stats carries per-file metadata.
type Stats struct {
	FileList []FileMeta `json:"fileList"`
}

// Node is a single module. ID is the file path and the sole identity.
type Node struct {
	ID   string  `json:"id"`
	Type *string `json:"type,omitempty"`
}

// Link is a directed dependency edge.
type Link struct {
	Source Endpoint `json:"source"`
	Target Endpoint `json:"target"`
}

// FileMeta is joined to a Node by exact Path == ID match.
type FileMeta struct {
	Path        string  `json:"path"`
	Size        float64 `json:"size"`
	LinesOfCode float64 `json:"linesOfCode"`
}

// NodeRef is a live node reference a layout engine may attach to a link
// endpoint in place of the bare id.
type NodeRef interface {
	NodeID() string
}

// Endpoint is one end of a Link. It arrives either as a bare id string or
// as an object {"id": ...}, and a layout may later attach a live Ref.
// Always read it through ResolveID.
type Endpoint struct {
	ID     string
	Object bool
	Ref    NodeRef
}

// ID returns a bare-id endpoint.
func ID(id string) Endpoint { return Endpoint{ID: id} }

// ResolveID returns the node id an endpoint refers to, whatever shape it
// currently has.
func ResolveID(e Endpoint) string {
	if e.Ref != nil {
		return e.Ref.NodeID()
	}
	return e.ID
}

// UnmarshalJSON accepts "id", {"id":"..."} and null.
func (e *Endpoint) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*e = Endpoint{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*e = Endpoint{ID: id}
		return nil
	default:
		var obj struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*e = Endpoint{ID: obj.ID, Object: true}
		return nil
	}
}

// MarshalJSON keeps the shape the endpoint arrived in. Endpoints carrying a
// live Ref are written in object form.
func (e Endpoint) MarshalJSON() ([]byte, error) {
	id := ResolveID(e)
	if e.Object || e.Ref != nil {
		return json.Marshal(struct {
			ID string `json:"id"`
		}{id})
	}
	return json.Marshal(id)
}

// Event is the content-free notification pushed to subscribers.
type Event struct {
	Type string `json:"type"`
}

// EventUpdate signals that a new report was accepted.
const EventUpdate = "update"

// UpdateEvent is the only event the server broadcasts.
var UpdateEvent = Event{Type: EventUpdate}
