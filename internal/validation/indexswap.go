package validation

import "github.com/kestrelfin/tradestore/internal/document"

// IndexSwapStructuralValidator checks the index swap leg block.
type IndexSwapStructuralValidator struct{}

func (IndexSwapStructuralValidator) Validate(trade document.Document) Result {
	var errors []string
	if trade.Lookup("leg") == nil {
		errors = append(errors, "Index Swap missing required field: leg")
	}
	return result(errors, nil)
}

// IndexSwapBusinessRuleValidator is a placeholder stage.
type IndexSwapBusinessRuleValidator struct{}

func (IndexSwapBusinessRuleValidator) Validate(trade document.Document) Result {
	return result(nil, nil)
}
