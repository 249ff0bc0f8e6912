package engine

import (
	"fmt"
	"sync"

	"github.com/piwi3910/BoxPack/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string             `json:"name"`
	Settings model.PackSettings `json:"settings"`
}

// ComparisonResult holds the packing result and summary statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario       ComparisonScenario `json:"scenario"`
	Result         model.PackResult   `json:"result"`
	ContainersUsed int                `json:"containers_used"`
	PlacedCount    int                `json:"placed_count"`
	RejectedCount  int                `json:"rejected_count"`
	Efficiency     float64            `json:"efficiency"`
	Err            error              `json:"-"`
}

// CompareScenarios packs the same items under every scenario. Scenarios run
// in parallel, each in its own session; results are returned in scenario
// order. A scenario with invalid settings carries its error in Err.
func CompareScenarios(container model.Dimensions, scenarios []ComparisonScenario, items []model.Item, opts ...Option) []ComparisonResult {
	results := make([]ComparisonResult, len(scenarios))

	var wg sync.WaitGroup
	for i, scenario := range scenarios {
		wg.Add(1)
		go func(i int, scenario ComparisonScenario) {
			defer wg.Done()
			results[i] = runScenario(container, scenario, items, opts...)
		}(i, scenario)
	}
	wg.Wait()

	return results
}

func runScenario(container model.Dimensions, scenario ComparisonScenario, items []model.Item, opts ...Option) ComparisonResult {
	result, err := New(scenario.Settings, opts...).Pack(container, items)
	if err != nil {
		return ComparisonResult{Scenario: scenario, Err: fmt.Errorf("scenario %q: %w", scenario.Name, err)}
	}
	return ComparisonResult{
		Scenario:       scenario,
		Result:         result,
		ContainersUsed: len(result.Containers),
		PlacedCount:    result.PlacedCount(),
		RejectedCount:  len(result.Rejected()),
		Efficiency:     result.GlobalEfficiency(),
	}
}

// BestResult returns the index of the scenario that placed the most items,
// then used the fewest containers, then reached the highest efficiency.
// It returns -1 if no scenario succeeded.
func BestResult(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if best < 0 || better(r, results[best]) {
			best = i
		}
	}
	return best
}

func better(a, b ComparisonResult) bool {
	if a.PlacedCount != b.PlacedCount {
		return a.PlacedCount > b.PlacedCount
	}
	if a.ContainersUsed != b.ContainersUsed {
		return a.ContainersUsed < b.ContainersUsed
	}
	return a.Efficiency > b.Efficiency
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(baseSettings model.PackSettings) []ComparisonScenario {
	base := baseSettings.Normalized()
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	// Scenario: the other ordering algorithms
	for _, algo := range []model.Algorithm{model.AlgorithmStream, model.AlgorithmVolumeDesc, model.AlgorithmGenetic} {
		if algo == base.Algorithm {
			continue
		}
		alt := base
		alt.Algorithm = algo
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Algorithm %s", algo),
			Settings: alt,
		})
	}

	// Scenario: full rotation
	if base.AllowRotation != model.RotationAllAxes {
		alt := base
		alt.AllowRotation = model.RotationAllAxes
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Rotate on all axes",
			Settings: alt,
		})
	}

	// Scenario: revisit every open container
	if base.BinPolicy != model.BinPolicyAllOpen {
		alt := base
		alt.BinPolicy = model.BinPolicyAllOpen
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Fill all open containers",
			Settings: alt,
		})
	}

	// Scenario: the other placement heuristic
	alt := base
	if base.Heuristic == model.HeuristicLowestAnchor {
		alt.Heuristic = model.HeuristicFirstFit
	} else {
		alt.Heuristic = model.HeuristicLowestAnchor
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Heuristic %s", alt.Heuristic),
		Settings: alt,
	})

	return scenarios
}
