package zoom

// Level is one display density of the timeline.
type Level struct {
	Name              string  `json:"name"`
	TickInterval      int     `json:"tickInterval"`
	MajorTickInterval int     `json:"majorTickInterval"`
	PixelsPerSecond   float64 `json:"pixelsPerSecond"`
}

// LabelClass tells the renderer which segment of the match a tick belongs to.
type LabelClass string

const (
	LabelRegular1  LabelClass = "gr"
	LabelStoppage1 LabelClass = "et1"
	LabelRegular2  LabelClass = "pu"
	LabelStoppage2 LabelClass = "et2"
)

// Tick is a single timeline marker. Offset is measured from the start of its half's timeline.
type Tick struct {
	Offset int        `json:"offset"`
	X      float64    `json:"x"`
	Major  bool       `json:"major"`
	Label  string     `json:"label"`
	Class  LabelClass `json:"class"`
}

// ProfileName selects a level table.
type ProfileName string

const (
	ProfileDefault        ProfileName = "default"
	ProfileMultiplicative ProfileName = "multiplicative"
)

// BasePixelsPerSecond is the reference density of the multiplicative profile.
const BasePixelsPerSecond = 3.0

// DefaultLevels are the 1, 5 and 10 minute granularities.
var DefaultLevels = []Level{
	{Name: "1min", TickInterval: 60, MajorTickInterval: 300, PixelsPerSecond: 3},
	{Name: "5min", TickInterval: 300, MajorTickInterval: 900, PixelsPerSecond: 1.5},
	{Name: "10min", TickInterval: 600, MajorTickInterval: 1800, PixelsPerSecond: 0.75},
}
