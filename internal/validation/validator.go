// Package validation runs trade payloads through a pipeline of per-type
// checks: core validators shared by every trade type, then validators
// registered for the detected type.
package validation

import "github.com/kestrelfin/tradestore/internal/document"

// Validator is one validation stage over a trade payload.
type Validator interface {
	Validate(trade document.Document) Result
}

// Result aggregates the outcome of one or more validation stages.
type Result struct {
	Success   bool     `json:"success"`
	Errors    []string `json:"errors"`
	Warnings  []string `json:"warnings"`
	TradeType string   `json:"trade_type,omitempty"`
}

func result(errors, warnings []string) Result {
	if errors == nil {
		errors = []string{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	return Result{Success: len(errors) == 0, Errors: errors, Warnings: warnings}
}
