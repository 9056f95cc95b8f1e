package cmd

import (
	"context"
	"fmt"

	"github.com/alexiusacademia/steelcct/internal/diagram"
	"github.com/alexiusacademia/steelcct/internal/transform"
)

// pairedCCT sweeps the cooling rates that reproduce the time window of a
// TTT diagram when cooling from tini
func pairedCCT(ctx context.Context, e *transform.Engine, ttt diagram.Diagram, tini float64, n int) ([]transform.CoolingRun, []float64, error) {
	tmin, tmax, ok := diagram.TimeRange(ttt)
	if !ok {
		return nil, nil, fmt.Errorf("TTT diagram has no finite curve, cannot derive a cooling rate range")
	}
	phiMin, phiMax := diagram.PairedRates(tini, tmin, tmax)
	rates, err := transform.RateSpan(phiMin, phiMax, n)
	if err != nil {
		return nil, nil, err
	}
	logger.WithField("phi_min", phiMin).WithField("phi_max", phiMax).Debug("paired cooling rate range")

	runs, err := e.CCT(ctx, tini, rates)
	if err != nil {
		return nil, nil, err
	}
	return runs, rates, nil
}

// export writes a diagram and reports where it went
func export(d diagram.Diagram, filename string) {
	if filename == "" {
		return
	}
	if err := diagram.Export(d, filename); err != nil {
		fmt.Printf("Error exporting diagram: %v\n", err)
		return
	}
	fmt.Printf("Diagram exported to: %s\n", filename)
}
