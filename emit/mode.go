package emit

//go:generate go tool stringer -type=Mode -trimprefix=Mode -output=mode_string.go

// Mode selects how a failing item is handled.
type Mode int

const (
	// ModeStrict stops at the first item that cannot be rendered and returns its error.
	ModeStrict Mode = iota
	// ModeBestEffort drops rows that cannot be rendered, counting and logging them.
	ModeBestEffort
)
