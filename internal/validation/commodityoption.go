package validation

import "github.com/kestrelfin/tradestore/internal/document"

// CommodityOptionStructuralValidator checks the commodity option block.
type CommodityOptionStructuralValidator struct{}

func (CommodityOptionStructuralValidator) Validate(trade document.Document) Result {
	var errors []string
	if trade.Lookup("commodityDetails") == nil {
		errors = append(errors, "Commodity Option missing required field: commodityDetails")
	}
	return result(errors, nil)
}

// CommodityOptionBusinessRuleValidator is a placeholder stage.
type CommodityOptionBusinessRuleValidator struct{}

func (CommodityOptionBusinessRuleValidator) Validate(trade document.Document) Result {
	return result(nil, nil)
}
