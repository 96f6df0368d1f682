package initializer

// State is a Template lifecycle stage.
type State int

const (
	StateCreated State = iota
	StateParametersValidated
	StatePreProcessed
	StateStructureGenerated
	StateTestingConfigured
	StatePostProcessing
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateCreated:             "created",
	StateParametersValidated: "parameters_validated",
	StatePreProcessed:        "pre_processed",
	StateStructureGenerated:  "structure_generated",
	StateTestingConfigured:   "testing_configured",
	StatePostProcessing:      "post_processing",
	StateDone:                "done",
	StateFailed:              "failed",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
