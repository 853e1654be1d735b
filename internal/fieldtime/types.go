package fieldtime

const (
	// MaxFieldSeconds is the upper bound of the playhead (150 minutes).
	MaxFieldSeconds = 9000
	// RegulationHalf is the natural length of a half (45:00).
	RegulationHalf = 2700
	// DefaultFirstHalfCap sizes the first half timeline until the half is ended (75 minutes).
	DefaultFirstHalfCap = 4500
	// SecondsPerDay is used when wrapping real clock values for display.
	SecondsPerDay = 86400
)

// MatchConfig holds the kickoff times and the recorded half ends.
// A nil field means the value has not been configured yet.
type MatchConfig struct {
	FirstHalfStart  *int `json:"firstHalfStart"`
	SecondHalfStart *int `json:"secondHalfStart"`
	FirstHalfEnd    *int `json:"firstHalfEnd"`
	SecondHalfEnd   *int `json:"secondHalfEnd"`
}

// Half identifies which of the two timelines a field time falls on.
type Half int

const (
	FirstHalf Half = iota + 1
	SecondHalf
)

func (h Half) String() string {
	switch h {
	case FirstHalf:
		return "first"
	case SecondHalf:
		return "second"
	default:
		return "unknown"
	}
}

// Phase is the finer classification used for labels and timeline colouring.
type Phase string

const (
	PhaseRegular1  Phase = "regular1"
	PhaseStoppage1 Phase = "stoppage1"
	PhaseRegular2  Phase = "regular2"
	PhaseStoppage2 Phase = "stoppage2"
)
