package ai

import "math"

// Calculator converts token counts into monetary cost and platform credits.
type Calculator struct {
	registry         *Registry
	creditsPerDollar float64
	safetyMargin     float64
	minimumCredits   int
}

// NewCalculator builds a cost calculator. The safety margin is a deliberate
// over-charge multiplier that absorbs token-estimation error; the minimum
// clamp guarantees no successful AI action is free.
func NewCalculator(registry *Registry, creditsPerDollar, safetyMargin float64, minimumCredits int) *Calculator {
	if creditsPerDollar <= 0 {
		creditsPerDollar = 100
	}
	if safetyMargin <= 0 {
		safetyMargin = 1.5
	}
	if minimumCredits <= 0 {
		minimumCredits = 1
	}
	return &Calculator{
		registry:         registry,
		creditsPerDollar: creditsPerDollar,
		safetyMargin:     safetyMargin,
		minimumCredits:   minimumCredits,
	}
}

// MonetaryCost returns the dollar cost of a call given its token counts.
// The boolean is false only when no pricing exists for the resolved model.
func (c *Calculator) MonetaryCost(modelID string, promptTokens, completionTokens int) (float64, bool) {
	model := c.registry.Get(modelID)
	if !model.HasPricing() {
		return 0, false
	}
	if promptTokens < 0 {
		promptTokens = 0
	}
	if completionTokens < 0 {
		completionTokens = 0
	}
	cost := float64(promptTokens)/1000*model.InputCostPer1K +
		float64(completionTokens)/1000*model.OutputCostPer1K
	return cost, true
}

// CreditCost converts a dollar cost into credits, applying the safety
// margin before clamping to the configured minimum.
func (c *Calculator) CreditCost(monetaryCost float64) int {
	if monetaryCost < 0 {
		monetaryCost = 0
	}
	credits := int(math.Ceil(monetaryCost * c.creditsPerDollar * c.safetyMargin))
	if credits < c.minimumCredits {
		credits = c.minimumCredits
	}
	return credits
}

// MinimumCredits returns the configured floor applied by CreditCost.
func (c *Calculator) MinimumCredits() int {
	return c.minimumCredits
}
