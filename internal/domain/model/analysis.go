// Package model contains the comparison domain model: the tolerant wire
// shapes emitted by the upstream analytics producer and the canonical
// records the aggregation pipeline works on.
package model

// Sentinel values used when per-runner data is absent.
const (
	UnknownAidStation = "Unknown"
	UnknownTerrain    = "Unknown"
	NotAvailable      = "N/A"
)

// RunnerAnalysis is the canonical per-runner record produced by ingestion.
// All fields are populated; optional upstream scalars stay pointers so the
// summary builder can distinguish absent from zero.
type RunnerAnalysis struct {
	RunnerID        string
	Fatigue         FatigueAnalysis
	Course          CourseAnalysis
	Rest            RestData
	Recommendations Recommendations

	// Degraded marks a runner whose upstream record was absent, failed or
	// partially malformed and was filled with sentinel defaults.
	Degraded       bool
	DegradedReason string
}

// FatigueAnalysis carries the precomputed fatigue numbers for one runner.
type FatigueAnalysis struct {
	AverageFatigue  *float64
	PeakFatigueMile *float64
	Progression     []FatiguePoint
}

// FatiguePoint is one sample of the per-mile fatigue progression.
type FatiguePoint struct {
	Mile              float64
	FatigueFactor     float64
	TerrainDifficulty float64
}

// CourseAnalysis carries the precomputed course-performance numbers.
type CourseAnalysis struct {
	StrongestTerrain   string
	ElevationTolerance string
	Segments           []SegmentPerformance
}

// SegmentPerformance describes one runner's performance on a named course
// segment. SegmentName is the identity key shared across runners on the
// same course.
type SegmentPerformance struct {
	SegmentName       string
	StartMile         float64
	EndMile           float64
	TerrainType       string
	DifficultyRating  float64 // in [0,5]
	AveragePace       float64 // minutes per mile; 0 means unknown
	PerformanceScore  float64 // in [0,1]
	ElevationGainFeet float64
	ElevationLossFeet float64
	ElevationNetFeet  float64
}

// RestData is the canonical, tagged shape of a runner's rest information.
// The wire shape is polymorphic (bare event array or wrapped object);
// ingestion collapses both into this record.
type RestData struct {
	Events          []RestEvent
	AidStationStops []AidStationStop
	Patterns        map[string]interface{}
	HasPatterns     bool
}

// RestEvent is a canonical detected rest period. The wire-level fallback
// chains (mile vs start_mile, pace_during vs actual_pace) are resolved
// here once; downstream components never re-implement them.
type RestEvent struct {
	Mile                 float64
	MileKnown            bool
	AidStation           string // UnknownAidStation when absent upstream
	IsSleepStation       bool
	RestType             RestType
	EstimatedRestMinutes float64
	PaceRatio            float64 // observed pace / baseline pace
	ObservedPace         float64 // pace_during, else actual_pace, else 0
	Confidence           Confidence
}

// AidStationStop is one recorded interaction with an aid station.
type AidStationStop struct {
	StationName         string
	Mile                float64
	RestDurationMinutes float64
	IsSleepStation      bool
	StationType         string
}

// Recommendations carries the upstream pacing recommendations verbatim;
// the pipeline passes them through untouched.
type Recommendations struct {
	OverallStrategy        string
	SegmentRecommendations []SegmentRecommendation
	CriticalSegments       []string
}

// SegmentRecommendation is one upstream per-segment pacing suggestion.
type SegmentRecommendation struct {
	Segment           string
	Miles             string
	Terrain           string
	Difficulty        float64
	RecommendedEffort float64
	KeyStrategy       string
	ElevationChange   float64
}
