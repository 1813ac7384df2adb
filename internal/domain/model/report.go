package model

// ComparisonRequest identifies the runners to compare. It is an explicit
// immutable value; the pipeline never reads selection state from anywhere
// else.
type ComparisonRequest struct {
	SelectedRunnerIDs []string `json:"selected_runner_ids"`
	CourseLengthMiles float64  `json:"course_length_miles"`
}

// ComparisonSummary holds one runner's derived scalars for the comparison
// table. Fields are never absent: missing upstream data surfaces as the
// documented sentinels ("N/A", "Unknown", 0).
type ComparisonSummary struct {
	AverageFatigue     string `json:"average_fatigue"`
	PeakFatigueMile    string `json:"peak_fatigue_mile"`
	RestCount          int    `json:"rest_count"`
	StrongestTerrain   string `json:"strongest_terrain"`
	ElevationTolerance string `json:"elevation_tolerance"`
}

// RestRecord is one runner's representative entry in a rest cluster: a
// real selected event, or an explicit placeholder when the runner had no
// event near the cluster.
type RestRecord struct {
	RunnerID             string     `json:"runner_id"`
	Mile                 float64    `json:"mile"`
	AidStation           string     `json:"aid_station"`
	Confidence           Confidence `json:"confidence,omitempty"`
	RestType             RestType   `json:"rest_type,omitempty"`
	EstimatedRestMinutes float64    `json:"estimated_rest_minutes,omitempty"`
	ObservedPace         float64    `json:"observed_pace,omitempty"`
	IsSleepStation       bool       `json:"is_sleep_station,omitempty"`
	NoRestDetected       bool       `json:"no_rest_detected"`
}

// RestClusterRow is one aligned row of the rest comparison: a cluster and
// exactly one record per selected runner.
type RestClusterRow struct {
	MeanMile   float64               `json:"mean_mile"`
	AidStation string                `json:"aid_station"`
	PerRunner  map[string]RestRecord `json:"per_runner"`
}

// CriticalSegment is one entry of the cross-runner difficulty ranking.
type CriticalSegment struct {
	Name           string  `json:"name"`
	AvgDifficulty  float64 `json:"avg_difficulty"`
	AvgPerformance float64 `json:"avg_performance"`
	RunnerCount    int     `json:"runner_count"`
}

// SegmentTableRow is one aligned row of the segment comparison table.
// AvgPace averages only runners reporting a positive pace for the segment.
type SegmentTableRow struct {
	Name            string             `json:"name"`
	StartMile       float64            `json:"start_mile"`
	EndMile         float64            `json:"end_mile"`
	TerrainType     string             `json:"terrain_type"`
	AvgDifficulty   float64            `json:"avg_difficulty"`
	AvgPace         float64            `json:"avg_pace"`
	PaceRunnerCount int                `json:"pace_runner_count"`
	PerRunnerPace   map[string]float64 `json:"per_runner_pace"`
}

// DegradedRunner names a runner whose data was replaced by sentinels and
// why, so the rendering layer can flag it without re-deriving anything.
type DegradedRunner struct {
	RunnerID string `json:"runner_id"`
	Reason   string `json:"reason"`
}

// ComparisonReport is the immutable result handed to the rendering layer.
type ComparisonReport struct {
	PerRunnerSummary map[string]ComparisonSummary `json:"per_runner_summary"`
	RestClusters     []RestClusterRow             `json:"rest_clusters"`
	CriticalSegments []CriticalSegment            `json:"critical_segments"`
	SegmentTable     []SegmentTableRow            `json:"segment_table"`
	DegradedRunners  []DegradedRunner             `json:"degraded_runners,omitempty"`
}
