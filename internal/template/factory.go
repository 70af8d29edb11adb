package template

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/kestrelfin/tradestore/internal/document"
)

//go:embed templates
var templatesFS embed.FS

// ErrUnknownType is returned when no template components exist for the
// requested trade type.
var ErrUnknownType = errors.New("unknown trade type")

// Factory creates assemblers from the embedded template components.
//
// Composition order for a trade type:
//  1. core/general.json, core/common.json (shared by all trades)
//  2. trade-types/<type>/general.json, common.json (overrides, when present)
//  3. remaining trade-types/<type>/*.json sorted by name (economic blocks)
//
// Adding a trade type means adding JSON files under templates/<version>/
// trade-types/; no code changes.
type Factory struct {
	version string
}

// NewFactory returns a factory for the given schema version, e.g. "v1".
func NewFactory(version string) (*Factory, error) {
	if _, err := fs.Stat(templatesFS, path.Join("templates", version)); err != nil {
		return nil, fmt.Errorf("template schema version %q not found: %w", version, err)
	}
	return &Factory{version: version}, nil
}

// CreateAssembler loads the component stack for tradeType and returns an
// assembler configured with the extend strategy, so leg blocks from
// separate files accumulate into one list.
func (f *Factory) CreateAssembler(tradeType string) (*Assembler, error) {
	components := make([]document.Document, 0, 8)

	for _, name := range []string{"core/general.json", "core/common.json"} {
		c, err := f.loadComponent(name)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("required core component missing: %s", name)
		}
		components = append(components, c)
	}

	typeDir := path.Join("trade-types", tradeType)
	entries, err := fs.ReadDir(templatesFS, path.Join("templates", f.version, typeDir))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, tradeType)
	}

	for _, name := range []string{"general.json", "common.json"} {
		c, err := f.loadComponent(path.Join(typeDir, name))
		if err != nil {
			return nil, err
		}
		if c != nil {
			components = append(components, c)
		}
	}

	var rest []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || name == "general.json" || name == "common.json" {
			continue
		}
		rest = append(rest, name)
	}
	sort.Strings(rest)

	for _, name := range rest {
		c, err := f.loadComponent(path.Join(typeDir, name))
		if err != nil {
			return nil, err
		}
		if c != nil {
			components = append(components, c)
		}
	}

	return NewAssembler(components...).WithListStrategy(ListExtend), nil
}

// NewTrade assembles a skeleton for tradeType and stamps it with a fresh
// generated trade id.
func (f *Factory) NewTrade(tradeType string) (document.Document, error) {
	assembler, err := f.CreateAssembler(tradeType)
	if err != nil {
		return nil, err
	}
	trade, err := assembler.Assemble()
	if err != nil {
		return nil, err
	}
	trade["id"] = GenerateTradeID(tradeType)
	return trade, nil
}

// AvailableTypes lists the trade types with template components.
func (f *Factory) AvailableTypes() []string {
	entries, err := fs.ReadDir(templatesFS, path.Join("templates", f.version, "trade-types"))
	if err != nil {
		return nil
	}
	var types []string
	for _, e := range entries {
		if e.IsDir() {
			types = append(types, e.Name())
		}
	}
	sort.Strings(types)
	return types
}

// GenerateTradeID produces an id like IR_SWAP_1A2B3C4D5E6F7A8B for the
// given trade type.
func GenerateTradeID(tradeType string) string {
	prefix := strings.ToUpper(strings.ReplaceAll(tradeType, "-", "_"))
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:16]
	return prefix + "_" + suffix
}

func (f *Factory) loadComponent(relative string) (document.Document, error) {
	data, err := fs.ReadFile(templatesFS, path.Join("templates", f.version, relative))
	if err != nil {
		return nil, nil
	}
	var component document.Document
	if err := json.Unmarshal(data, &component); err != nil {
		return nil, fmt.Errorf("loading component %s: %w", relative, err)
	}
	return component, nil
}
