package validation

import "github.com/kestrelfin/tradestore/internal/document"

// Pipeline executes validation stages in compositional order: core
// validators first, then trade-type validators, concatenating errors and
// warnings. Success means zero errors across every stage.
type Pipeline struct {
	core      []Validator
	tradeType string
	typed     []Validator
}

// NewPipeline builds a pipeline over the given stages.
func NewPipeline(core, typed []Validator, tradeType string) *Pipeline {
	return &Pipeline{core: core, typed: typed, tradeType: tradeType}
}

// Validate runs every stage against the trade.
func (p *Pipeline) Validate(trade document.Document) Result {
	var errors, warnings []string

	for _, v := range p.core {
		r := v.Validate(trade)
		errors = append(errors, r.Errors...)
		warnings = append(warnings, r.Warnings...)
	}

	for _, v := range p.typed {
		r := v.Validate(trade)
		errors = append(errors, r.Errors...)
		warnings = append(warnings, r.Warnings...)
	}

	out := result(errors, warnings)
	out.TradeType = p.tradeType
	return out
}
