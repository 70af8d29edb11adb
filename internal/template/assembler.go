// Package template assembles new-trade skeletons by deep-merging ordered
// JSON components: a shared core layer, then trade-type overrides, then
// the trade type's economic blocks.
package template

import "github.com/kestrelfin/tradestore/internal/document"

// ListStrategy controls how two list values merge during assembly.
type ListStrategy string

const (
	// ListReplace drops the earlier list in favor of the later one.
	ListReplace ListStrategy = "replace"
	// ListAppend appends the later list as a single element of the earlier.
	ListAppend ListStrategy = "append"
	// ListExtend concatenates the later list's elements onto the earlier.
	ListExtend ListStrategy = "extend"
)

// Assembler merges component maps in order into one trade skeleton.
// Later components override earlier ones for conflicting keys. Inputs are
// never mutated; assembly always produces fresh structures.
type Assembler struct {
	components []document.Document
	strategy   ListStrategy
	validator  func(document.Document) error
}

// NewAssembler builds an assembler over components with the replace list
// strategy.
func NewAssembler(components ...document.Document) *Assembler {
	return &Assembler{components: components, strategy: ListReplace}
}

// WithListStrategy returns a copy of the assembler using the given list
// merge strategy.
func (a *Assembler) WithListStrategy(s ListStrategy) *Assembler {
	return &Assembler{components: a.components, strategy: s, validator: a.validator}
}

// WithValidator returns a copy of the assembler that runs fn on the
// assembled result before returning it.
func (a *Assembler) WithValidator(fn func(document.Document) error) *Assembler {
	return &Assembler{components: a.components, strategy: a.strategy, validator: fn}
}

// Assemble merges all components into a single trade skeleton.
func (a *Assembler) Assemble() (document.Document, error) {
	trade := document.Document{}
	for _, component := range a.components {
		a.mergeInto(trade, component)
	}
	if a.validator != nil {
		if err := a.validator(trade); err != nil {
			return nil, err
		}
	}
	return trade, nil
}

func (a *Assembler) mergeInto(target, source map[string]any) {
	for key, sv := range source {
		tv, exists := target[key]
		if !exists {
			target[key] = document.CloneValue(sv)
			continue
		}

		tm, tIsMap := tv.(map[string]any)
		sm, sIsMap := sv.(map[string]any)
		if tIsMap && sIsMap {
			a.mergeInto(tm, sm)
			continue
		}

		tl, tIsList := tv.([]any)
		sl, sIsList := sv.([]any)
		if tIsList && sIsList {
			target[key] = a.mergeLists(tl, sl)
			continue
		}

		target[key] = document.CloneValue(sv)
	}
}

func (a *Assembler) mergeLists(target, source []any) []any {
	cp := func(l []any) []any {
		return document.CloneValue(l).([]any)
	}
	switch a.strategy {
	case ListAppend:
		result := cp(target)
		return append(result, any(cp(source)))
	case ListExtend:
		return append(cp(target), cp(source)...)
	default:
		return cp(source)
	}
}
