package model

import "encoding/json"

// statusFailed marks a failed payload or per-runner record on the wire.
const statusFailed = "failed"

// RawAnalysisMap is the decoded upstream payload for one comparison
// request: either a mapping of runner id to raw record, or a top-level
// {"status":"failed","error":...} sentinel.
type RawAnalysisMap struct {
	Status  string
	Error   string
	Runners map[string]RawRunnerAnalysis
}

// Failed reports whether the whole payload carries the failure sentinel.
func (m RawAnalysisMap) Failed() bool { return m.Status == statusFailed }

// UnmarshalJSON decodes either wire form. A top-level "status" field takes
// precedence over runner entries, mirroring the producer's contract.
func (m *RawAnalysisMap) UnmarshalJSON(b []byte) error {
	var probe struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}
	if probe.Status == statusFailed {
		m.Status = probe.Status
		m.Error = probe.Error
		return nil
	}
	return json.Unmarshal(b, &m.Runners)
}

// MarshalJSON emits the same form the producer uses, so payloads can be
// round-tripped by the simulation CLI and tests.
func (m RawAnalysisMap) MarshalJSON() ([]byte, error) {
	if m.Failed() {
		return json.Marshal(struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		}{m.Status, m.Error})
	}
	return json.Marshal(m.Runners)
}

// RawRunnerAnalysis is the tolerant wire shape of one runner's analysis.
// Every section is optional; ingestion substitutes sentinels for whatever
// is missing.
type RawRunnerAnalysis struct {
	Status          string              `json:"status,omitempty"`
	Error           string              `json:"error,omitempty"`
	Fatigue         *RawFatigueAnalysis `json:"fatigue_analysis,omitempty"`
	Course          *RawCourseAnalysis  `json:"course_analysis,omitempty"`
	Rest            *RawRestData        `json:"rest_periods,omitempty"`
	Recommendations *RawRecommendations `json:"recommendations,omitempty"`
}

// Failed reports whether this single record carries the failure sentinel.
// The producer emits either {"status":"failed","error":...} or, for
// per-runner analysis failures, a bare {"error":...} with no data sections.
func (r RawRunnerAnalysis) Failed() bool {
	if r.Status == statusFailed {
		return true
	}
	return r.Error != "" && r.Fatigue == nil && r.Course == nil && r.Rest == nil && r.Recommendations == nil
}

// RawFatigueAnalysis mirrors the producer's fatigue_analysis section.
type RawFatigueAnalysis struct {
	AverageFatigue  *float64          `json:"average_fatigue,omitempty"`
	PeakFatigueMile *float64          `json:"peak_fatigue_mile,omitempty"`
	Progression     []RawFatiguePoint `json:"fatigue_progression,omitempty"`
}

// RawFatiguePoint is one wire sample of the fatigue progression.
type RawFatiguePoint struct {
	Mile              float64 `json:"mile"`
	FatigueFactor     float64 `json:"fatigue_factor"`
	TerrainDifficulty float64 `json:"terrain_difficulty"`
}

// RawCourseAnalysis mirrors the producer's course_analysis section.
type RawCourseAnalysis struct {
	StrongestTerrain   string                  `json:"strongest_terrain,omitempty"`
	ElevationTolerance string                  `json:"elevation_tolerance,omitempty"`
	Segments           []RawSegmentPerformance `json:"segment_analysis,omitempty"`
}

// RawSegmentPerformance mirrors one wire segment_analysis entry.
type RawSegmentPerformance struct {
	SegmentName       string  `json:"segment_name"`
	StartMile         float64 `json:"start_mile"`
	EndMile           float64 `json:"end_mile"`
	TerrainType       string  `json:"terrain_type,omitempty"`
	DifficultyRating  float64 `json:"difficulty_rating"`
	AveragePace       float64 `json:"average_pace"`
	PerformanceScore  float64 `json:"performance_score"`
	ElevationGainFeet float64 `json:"elevation_gain"`
	ElevationLossFeet float64 `json:"elevation_loss"`
}

// RawRestEvent is the tolerant wire shape of one detected rest period.
// The mile may arrive under "mile" or "start_mile"; the observed rest pace
// under "pace_during" or "actual_pace".
type RawRestEvent struct {
	Mile                 *float64 `json:"mile,omitempty"`
	StartMile            *float64 `json:"start_mile,omitempty"`
	NearbyAidStation     *string  `json:"nearby_aid_station,omitempty"`
	IsSleepStation       bool     `json:"is_sleep_station,omitempty"`
	RestType             string   `json:"rest_type,omitempty"`
	EstimatedRestMinutes *float64 `json:"estimated_rest_minutes,omitempty"`
	PaceRatio            *float64 `json:"pace_ratio,omitempty"`
	PaceDuring           *float64 `json:"pace_during,omitempty"`
	ActualPace           *float64 `json:"actual_pace,omitempty"`
	Confidence           string   `json:"confidence,omitempty"`
}

// RawAidStationStop mirrors one wire aid_station_stops entry.
type RawAidStationStop struct {
	StationName         string  `json:"station_name"`
	Mile                float64 `json:"mile"`
	RestDurationMinutes float64 `json:"rest_duration_minutes"`
	IsSleepStation      bool    `json:"is_sleep_station,omitempty"`
	StationType         string  `json:"station_type,omitempty"`
}

// RawRestData absorbs the producer's polymorphic rest payload: older
// records ship a bare array of rest events, newer ones an object bundling
// events with aid-station stop and pattern metadata.
type RawRestData struct {
	Events          []RawRestEvent
	AidStationStops []RawAidStationStop
	Patterns        map[string]interface{}
	Wrapped         bool
}

type rawRestObject struct {
	RestPeriods     []RawRestEvent         `json:"rest_periods,omitempty"`
	RestEvents      []RawRestEvent         `json:"rest_events,omitempty"`
	AidStationStops []RawAidStationStop    `json:"aid_station_stops,omitempty"`
	Patterns        map[string]interface{} `json:"aid_station_patterns,omitempty"`
}

// UnmarshalJSON accepts both wire forms.
func (r *RawRestData) UnmarshalJSON(b []byte) error {
	var events []RawRestEvent
	if err := json.Unmarshal(b, &events); err == nil {
		r.Events = events
		r.Wrapped = false
		return nil
	}

	var obj rawRestObject
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	r.Events = obj.RestPeriods
	if len(r.Events) == 0 {
		r.Events = obj.RestEvents
	}
	r.AidStationStops = obj.AidStationStops
	r.Patterns = obj.Patterns
	r.Wrapped = true
	return nil
}

// MarshalJSON always emits the wrapped form.
func (r RawRestData) MarshalJSON() ([]byte, error) {
	return json.Marshal(rawRestObject{
		RestPeriods:     r.Events,
		AidStationStops: r.AidStationStops,
		Patterns:        r.Patterns,
	})
}

// RawRecommendations mirrors the producer's recommendations section.
type RawRecommendations struct {
	OverallStrategy        string                     `json:"overall_strategy,omitempty"`
	SegmentRecommendations []RawSegmentRecommendation `json:"segment_recommendations,omitempty"`
	CriticalSegments       []string                   `json:"critical_segments,omitempty"`
}

// RawSegmentRecommendation mirrors one wire pacing suggestion.
type RawSegmentRecommendation struct {
	Segment           string  `json:"segment"`
	Miles             string  `json:"miles,omitempty"`
	Terrain           string  `json:"terrain,omitempty"`
	Difficulty        float64 `json:"difficulty,omitempty"`
	RecommendedEffort float64 `json:"recommended_effort,omitempty"`
	KeyStrategy       string  `json:"key_strategy,omitempty"`
	ElevationChange   float64 `json:"elevation_change,omitempty"`
}
