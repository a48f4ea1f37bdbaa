package observability

import (
	"strconv"
	"strings"
)

// Pricing constants
const (
	tokensPerKilo       = 1000.0
	costFormatPrecision = 6

	// GPT-5 pricing
	gpt5InputPrice  = 0.00125
	gpt5OutputPrice = 0.01

	// GPT-5-mini pricing
	gpt5MiniInputPrice  = 0.00025
	gpt5MiniOutputPrice = 0.002

	// GPT-5-nano pricing
	gpt5NanoInputPrice  = 0.00005
	gpt5NanoOutputPrice = 0.0004

	// Gemini 2.5 Flash pricing
	gemini25FlashInputPrice  = 0.0003
	gemini25FlashOutputPrice = 0.0025

	// Gemini 2.5 Pro pricing
	gemini25ProInputPrice  = 0.00125
	gemini25ProOutputPrice = 0.01

	defaultPricingModel = "gemini-2.5-flash"
)

// ModelPricing contains pricing information per 1K tokens
type ModelPricing struct {
	InputPricePer1K  float64 // Price per 1K input tokens in USD
	OutputPricePer1K float64 // Price per 1K output tokens in USD
}

// TokenCounts is the token usage of one generation
type TokenCounts struct {
	Input     int
	Output    int
	Reasoning int
	Total     int
}

// PricingTable contains pricing for all models
var PricingTable = map[string]ModelPricing{
	"gpt-5": {
		InputPricePer1K:  gpt5InputPrice,
		OutputPricePer1K: gpt5OutputPrice,
	},
	"gpt-5-mini": {
		InputPricePer1K:  gpt5MiniInputPrice,
		OutputPricePer1K: gpt5MiniOutputPrice,
	},
	"gpt-5-nano": {
		InputPricePer1K:  gpt5NanoInputPrice,
		OutputPricePer1K: gpt5NanoOutputPrice,
	},
	"gemini-2.5-flash": {
		InputPricePer1K:  gemini25FlashInputPrice,
		OutputPricePer1K: gemini25FlashOutputPrice,
	},
	"gemini-2.5-pro": {
		InputPricePer1K:  gemini25ProInputPrice,
		OutputPricePer1K: gemini25ProOutputPrice,
	},
}

// PricingFor returns the pricing of a model. Dated or suffixed model names
// ("gpt-5-mini-2025-08-07") match their base entry; unknown models use Gemini Flash pricing.
func PricingFor(model string) ModelPricing {
	if pricing, ok := PricingTable[model]; ok {
		return pricing
	}
	best := ""
	for name := range PricingTable {
		if strings.HasPrefix(model, name+"-") && len(name) > len(best) {
			best = name
		}
	}
	if best != "" {
		return PricingTable[best]
	}
	return PricingTable[defaultPricingModel]
}

// CalculateCost calculates the cost in USD for one provider call.
// Reasoning tokens are billed as output tokens.
func CalculateCost(model string, usage TokenCounts) float64 {
	pricing := PricingFor(model)

	inputCost := (float64(usage.Input) / tokensPerKilo) * pricing.InputPricePer1K
	outputCost := (float64(usage.Output) / tokensPerKilo) * pricing.OutputPricePer1K

	return inputCost + outputCost
}

// FormatCost formats a cost value as a USD string
func FormatCost(cost float64) string {
	return "$" + formatFloat(cost, costFormatPrecision)
}

// formatFloat formats a float with specified precision using strconv
func formatFloat(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}
