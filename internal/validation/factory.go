package validation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kestrelfin/tradestore/internal/document"
)

// ErrUnknownTradeType is returned when a payload's trade type cannot be
// detected or has no registered validators.
var ErrUnknownTradeType = errors.New("unknown trade type")

// Factory builds validation pipelines from a registry of per-type
// validators. Core validators apply to every trade.
type Factory struct {
	core     []Validator
	registry map[string][]Validator
}

// NewFactory returns a factory with the built-in validator registry.
func NewFactory() *Factory {
	return &Factory{
		core: []Validator{
			CoreStructuralValidator{},
			CoreBusinessRuleValidator{},
		},
		registry: map[string][]Validator{
			"ir-swap": {
				IRSwapStructuralValidator{},
				IRSwapBusinessRuleValidator{},
			},
			"commodity-option": {
				CommodityOptionStructuralValidator{},
				CommodityOptionBusinessRuleValidator{},
			},
			"index-swap": {
				IndexSwapStructuralValidator{},
				IndexSwapBusinessRuleValidator{},
			},
		},
	}
}

// CreatePipeline detects the trade type and assembles core plus
// type-specific validators for it.
func (f *Factory) CreatePipeline(trade document.Document) (*Pipeline, error) {
	tradeType, err := DetectTradeType(trade)
	if err != nil {
		return nil, err
	}
	typed, ok := f.registry[tradeType]
	if !ok {
		return nil, fmt.Errorf("%w: no validators registered for %q", ErrUnknownTradeType, tradeType)
	}
	return NewPipeline(f.core, typed, tradeType), nil
}

// SupportedTradeTypes lists the registered trade types.
func (f *Factory) SupportedTradeTypes() []string {
	types := make([]string, 0, len(f.registry))
	for t := range f.registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// DetectTradeType infers the trade type from distinctive payload fields.
func DetectTradeType(trade document.Document) (string, error) {
	switch {
	case trade.Lookup("swapDetails") != nil || trade.Lookup("swapLegs") != nil:
		return "ir-swap", nil
	case trade.Lookup("commodityDetails") != nil || trade.Lookup("premium") != nil:
		return "commodity-option", nil
	case trade.Lookup("leg") != nil:
		return "index-swap", nil
	default:
		return "", fmt.Errorf("%w: unable to detect trade type", ErrUnknownTradeType)
	}
}
