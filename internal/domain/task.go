package domain

import "time"

// Metric names a per-character progress counter that tasks track
type Metric string

const (
	MetricCrimesCommitted    Metric = "crimes_committed"
	MetricItemsBought        Metric = "items_bought"
	MetricItemsSold          Metric = "items_sold"
	MetricMoneyBalance       Metric = "money_balance"
	MetricBankBalance        Metric = "bank_balance"
	MetricLevel              Metric = "level"
	MetricContractsFulfilled Metric = "contracts_fulfilled"
)

// MetricMode determines how UpdateProgress interprets the supplied value
type MetricMode int

const (
	// MetricModeIncremental adds the supplied delta to current progress
	MetricModeIncremental MetricMode = iota
	// MetricModeAbsolute records max(current, supplied); progress never decreases
	MetricModeAbsolute
)

// metricModes fixes each metric's update semantics. The mode belongs to
// the metric, not the caller.
var metricModes = map[Metric]MetricMode{
	MetricCrimesCommitted:    MetricModeIncremental,
	MetricItemsBought:        MetricModeIncremental,
	MetricItemsSold:          MetricModeIncremental,
	MetricMoneyBalance:       MetricModeAbsolute,
	MetricBankBalance:        MetricModeAbsolute,
	MetricLevel:              MetricModeAbsolute,
	MetricContractsFulfilled: MetricModeIncremental,
}

// Mode returns the update semantics for the metric.
// Unknown metrics default to incremental.
func (m Metric) Mode() MetricMode {
	if mode, ok := metricModes[m]; ok {
		return mode
	}
	return MetricModeIncremental
}

// IsValid reports whether m is a registered metric
func (m Metric) IsValid() bool {
	_, ok := metricModes[m]
	return ok
}

// RewardBundle is what a completed task pays out on claim
type RewardBundle struct {
	Money  int64 `json:"money"`
	Exp    int64 `json:"exp"`
	Points int64 `json:"points"`
}

// TaskDefinition is static reference data describing one task
type TaskDefinition struct {
	ID     int          `json:"id"`
	Metric Metric       `json:"metric"`
	Name   string       `json:"name"`
	Goal   int64        `json:"goal"`
	Reward RewardBundle `json:"reward"`
	Active bool         `json:"active"`
}

// TaskProgress represents one character's progress against one task.
// Progress is monotonically non-decreasing and clamped at the goal;
// IsCompleted flips true exactly once; RewardCollected is permanent.
type TaskProgress struct {
	CharacterID     int64      `json:"character_id"`
	TaskID          int        `json:"task_id"`
	Progress        int64      `json:"progress"`
	IsCompleted     bool       `json:"is_completed"`
	RewardCollected bool       `json:"reward_collected"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}
