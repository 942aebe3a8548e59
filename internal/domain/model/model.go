// Package model contains domain models passed between layers.
package model

// ItemInput is one ordered entry from the upstream question catalog.
type ItemInput struct {
	ID          string  // question identifier
	Probability float64 // target marginal P(yes), strictly in (0, 1)
}

// Item is a fully calibrated 2PL item. Immutable once calibrated: the
// discrimination and difficulty are jointly chosen so the population-
// marginal endorsement probability over a standard-normal ability prior
// equals Probability to numerical tolerance.
type Item struct {
	ID             string
	Probability    float64 // target marginal P(yes)
	Discrimination float64 // 2PL slope, > 0
	Difficulty     float64 // 2PL location
}

// Artifact is the complete calibration record handed to the persistence
// layer. It carries the full configuration for provenance so a consumer
// can verify (or reproduce) the table that scored it.
type Artifact struct {
	Version         string    // format tag for layout compatibility checks
	GeneratedAt     string    // date stamp, informational only
	RunID           string    // unique id for this pipeline run
	Seed            int64     // simulation seed
	PopulationSize  int       // number of simulated respondents
	QuantileStep    float64   // percentile resolution in percentage points
	QuestionIDs     []string  // ordered ids; index order shared by the parallel slices
	Probabilities   []float64 // target marginal probabilities per item
	Discriminations []float64 // calibrated 2PL slopes per item
	Difficulties    []float64 // calibrated 2PL locations per item
	ThetaQuantiles  []float64 // ability value at percentile i*QuantileStep
}

// Items reassembles the calibrated items from the parallel slices.
func (a *Artifact) Items() []Item {
	items := make([]Item, len(a.QuestionIDs))
	for i, id := range a.QuestionIDs {
		items[i] = Item{
			ID:             id,
			Probability:    a.Probabilities[i],
			Discrimination: a.Discriminations[i],
			Difficulty:     a.Difficulties[i],
		}
	}
	return items
}
