package plan

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// Dump returns a deep, human-readable dump of the plan tree.
func Dump(n *Node) string {
	return dumpConfig.Sdump(n)
}

// nodeYAML is the exported form of a Node.
type nodeYAML struct {
	Field     string      `yaml:"field,omitempty"`
	Kind      string      `yaml:"kind"`
	Header    string      `yaml:"header,omitempty"`
	Inline    bool        `yaml:"inline,omitempty"`
	Delimiter string      `yaml:"delimiter,omitempty"`
	Type      string      `yaml:"type,omitempty"`
	Columns   int         `yaml:"columns"`
	Children  []*nodeYAML `yaml:"children,omitempty"`
}

func exportNode(n *Node) *nodeYAML {
	out := &nodeYAML{
		Field:     n.Name,
		Kind:      strings.ToLower(n.Kind.String()),
		Header:    n.Header,
		Inline:    n.Inline,
		Delimiter: n.Delimiter,
		Type:      n.Type,
		Columns:   n.Width(),
	}

	for _, c := range n.Children {
		out.Children = append(out.Children, exportNode(c))
	}

	return out
}

// MarshalYAML serializes the plan tree for review.
func MarshalYAML(n *Node) ([]byte, error) {
	return yaml.Marshal(exportNode(n))
}
