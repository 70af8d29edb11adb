package validation

import (
	"fmt"

	"github.com/kestrelfin/tradestore/internal/document"
)

// IRSwapStructuralValidator checks the IR swap economic blocks:
// swapDetails plus at least one leg with direction and currency.
type IRSwapStructuralValidator struct{}

func (IRSwapStructuralValidator) Validate(trade document.Document) Result {
	var errors []string

	if trade.Lookup("swapDetails") == nil {
		errors = append(errors, "IR Swap missing required field: swapDetails")
	}

	legs, _ := trade.Lookup("swapLegs").([]any)
	if len(legs) == 0 {
		errors = append(errors, "IR Swap must have at least one leg in swapLegs array")
	} else {
		for idx, raw := range legs {
			leg, _ := raw.(map[string]any)
			if s, _ := leg["direction"].(string); s == "" {
				errors = append(errors, fmt.Sprintf("swapLegs[%d] missing required field: direction", idx))
			}
			if s, _ := leg["currency"].(string); s == "" {
				errors = append(errors, fmt.Sprintf("swapLegs[%d] missing required field: currency", idx))
			}
		}
	}

	return result(errors, nil)
}

// IRSwapBusinessRuleValidator is a placeholder stage. Date ordering and
// notional checks land here once the rules are specified.
type IRSwapBusinessRuleValidator struct{}

func (IRSwapBusinessRuleValidator) Validate(trade document.Document) Result {
	return result(nil, nil)
}
