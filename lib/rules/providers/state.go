package providers

// verdict is the answer to a yes/no question that may not be decided yet.
type verdict int

const (
	undecided verdict = iota
	yes
	no
)

func (v verdict) String() string {
	switch v {
	case yes:
		return "yes"
	case no:
		return "no"
	}
	return "undecided"
}

// scanState is everything one pass over a file accumulates. It is replaced
// wholesale by newScanState after every pass, never cleared field by field.
type scanState struct {
	provider verdict
	deferred verdict

	// token index -> captured class name
	bound    map[int]string
	provides map[int]string

	inBindCall      bool
	inProvides      bool
	inProvidesArray bool
	providesDepth   int

	checkingExtends    bool
	checkingImplements bool
	checkingDeferValue bool
}

func newScanState() *scanState {
	return &scanState{
		bound:    make(map[int]string),
		provides: make(map[int]string),
	}
}

// qualifies reports whether the class was found to be a deferred provider.
func (s *scanState) qualifies() bool {
	return s.provider == yes && s.deferred == yes
}

// disqualified reports whether the pass can stop early.
func (s *scanState) disqualified() bool {
	return s.provider == no || s.deferred == no
}
