package keysym

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"gioui.org/io/key"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/overrides-v1.schema.json
var overridesSchema []byte

const overridesSchemaID = "typetrace://schema/keysym-overrides-v1.schema.json"

// Override replaces the translation for a single toolkit key name.
type Override struct {
	Keysym string `json:"keysym"`
	Char   string `json:"char,omitempty"`
}

// overrideFile is the on-disk shape of an override table.
type overrideFile struct {
	Version   int                 `json:"version"`
	Overrides map[string]Override `json:"overrides"`
}

// Translator applies an optional user override table on top of the
// built-in translation. The zero value translates with defaults only.
type Translator struct {
	mu        sync.RWMutex
	overrides map[string]Override
}

// NewTranslator returns a Translator with no overrides loaded.
func NewTranslator() *Translator {
	return &Translator{}
}

// LoadOverrides reads a JSON override table from path, validates it
// against the embedded schema, and installs it atomically. On any error
// the previously installed table is kept.
func (t *Translator) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read overrides: %w", err)
	}

	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("parse overrides: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(overridesSchemaID, bytes.NewReader(overridesSchema)); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(overridesSchemaID)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("overrides %s: %w", path, err)
	}

	var file overrideFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("decode overrides: %w", err)
	}

	t.mu.Lock()
	t.overrides = file.Overrides
	t.mu.Unlock()
	return nil
}

// ClearOverrides drops any installed override table.
func (t *Translator) ClearOverrides() {
	t.mu.Lock()
	t.overrides = nil
	t.mu.Unlock()
}

// Translate is like the package-level Translate, with the override
// table consulted first.
func (t *Translator) Translate(name key.Name, mods key.Modifiers) (keysym, char string) {
	t.mu.RLock()
	o, ok := t.overrides[string(name)]
	t.mu.RUnlock()
	if ok {
		return o.Keysym, o.Char
	}
	return Translate(name, mods)
}
