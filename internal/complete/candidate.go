// Package complete assembles context-aware completion candidates: it
// invalidates and re-parses the active module, classifies the cursor,
// matches imports, and expands their exposed surfaces.
package complete

// Kind classifies a candidate.
type Kind string

const (
	KindValue  Kind = "value"
	KindType   Kind = "type"
	KindModule Kind = "module"
)

// Candidate is one proposed completion. Path, Module and Name carry enough
// identity for a later Resolve call to fetch documentation.
type Candidate struct {
	// Label is the display text.
	Label string `json:"label"`
	Kind  Kind   `json:"kind"`
	// Path is the file the completion was requested in.
	Path string `json:"path"`
	// Module is the owning module's dotted name.
	Module string `json:"module"`
	// Name is the declaration name.
	Name string `json:"name"`
	// Detail is "<name> : <type>". Empty until resolved.
	Detail string `json:"detail,omitempty"`
	// Documentation is the doc comment. Empty until resolved.
	Documentation string `json:"documentation,omitempty"`
}
