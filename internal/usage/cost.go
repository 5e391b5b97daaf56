package usage

import "math"

// Claude 3 Opus pricing (as of Nov 2024), per 1M tokens in USD.
const (
	OpusInputCostPer1M  = 15.00
	OpusOutputCostPer1M = 75.00

	SonnetInputCostPer1M  = 3.00
	SonnetOutputCostPer1M = 15.00
)

// EstimateCost returns the USD cost of an API call, rounded to 6 decimal
// places. Unknown models price as Opus.
func EstimateCost(inputTokens, outputTokens int, model string) float64 {
	inputCostPer1M := OpusInputCostPer1M
	outputCostPer1M := OpusOutputCostPer1M

	if model == "claude-3-5-sonnet" {
		inputCostPer1M = SonnetInputCostPer1M
		outputCostPer1M = SonnetOutputCostPer1M
	}

	inputCost := float64(inputTokens) / 1_000_000 * inputCostPer1M
	outputCost := float64(outputTokens) / 1_000_000 * outputCostPer1M

	return math.Round((inputCost+outputCost)*1e6) / 1e6
}
