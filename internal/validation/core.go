package validation

import (
	"fmt"
	"time"

	"github.com/kestrelfin/tradestore/internal/document"
)

// coreRequiredFields are the minimal fields every trade must carry
// regardless of type.
var coreRequiredFields = []string{
	"general.tradeId",
	"general.transactionRoles.priceMaker",
	"common.book",
	"common.tradeDate",
	"common.counterparty",
	"common.inputDate",
}

// presaveEmptyAllowed lists fields that may be empty strings on presave
// payloads where the backend assigns the value later.
var presaveEmptyAllowed = map[string]bool{
	"general.tradeId":                     true,
	"general.transactionRoles.priceMaker": true,
}

// CoreStructuralValidator checks that the core required fields exist and
// are non-empty for every trade type.
type CoreStructuralValidator struct{}

func (CoreStructuralValidator) Validate(trade document.Document) Result {
	var errors []string

	for _, fieldPath := range coreRequiredFields {
		value := trade.Lookup(fieldPath)
		switch {
		case value == nil:
			errors = append(errors, fmt.Sprintf("Required field missing: %s", fieldPath))
		case value == "":
			if presaveEmptyAllowed[fieldPath] {
				continue
			}
			errors = append(errors, fmt.Sprintf("Required field empty: %s", fieldPath))
		}
	}

	return result(errors, nil)
}

// CoreBusinessRuleValidator checks universal business rules. Scope is
// deliberately minimal: only tradeDate format for now.
type CoreBusinessRuleValidator struct{}

func (CoreBusinessRuleValidator) Validate(trade document.Document) Result {
	var errors []string

	// Only validate when the field exists; the structural validator
	// reports missing fields.
	if s, ok := trade.Lookup("common.tradeDate").(string); ok && s != "" {
		if _, err := time.Parse("2006-01-02", s); err != nil {
			errors = append(errors, fmt.Sprintf("Invalid tradeDate format: %s. Expected YYYY-MM-DD", s))
		}
	}

	return result(errors, nil)
}
