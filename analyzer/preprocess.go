package analyzer

// PreprocessResult counts what Preprocess changed.
type PreprocessResult struct {
	DroppedProbes int
	ImputedCells  int
}

// Preprocess removes probes that were not measured in any sample, then fills
// each remaining missing value with the mean of its probe's measured values.
// Running it again on imputed data changes nothing.
func (a *Analyzer) Preprocess() PreprocessResult {
	out := PreprocessResult{
		DroppedProbes: a.matrix.DropEmpty(),
		ImputedCells:  a.matrix.Impute(),
	}

	a.log.Printf("Preprocessing dropped %d empty probes and imputed %d missing values\n", out.DroppedProbes, out.ImputedCells)

	return out
}
