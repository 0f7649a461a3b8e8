package plan

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind is the variant of a plan node.
type Kind int

const (
	KindTerminal Kind = iota
	KindGroup
	KindCollection
)
