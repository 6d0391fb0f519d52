package ai

// Mode selects which metadata schema the extractor asks the model for.
type Mode int

const (
	// ModeFull requests every recognized SemanticMetadata field. Used for files.
	ModeFull Mode = iota
	// ModeKeywords requests only a keyword list. Used for task descriptions.
	ModeKeywords
)

// String returns the mode name used in logs.
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeKeywords:
		return "keywords"
	default:
		return "unknown"
	}
}

// Temperature returns the sampling temperature used for the mode.
// Keyword extraction runs fully greedy so task keywords are stable.
func (m Mode) Temperature() float64 {
	if m == ModeKeywords {
		return 0.0
	}
	return 0.2
}
