// Package schema wraps the JSON Schema validation of registry profile and
// asset override documents. The schemas themselves are embedded; callers get
// back either nil or a DocumentError carrying the validator's structured
// error list.
package schema

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed registry-profile.schema.json
var registryProfileSchema string

//go:embed asset-overrides.schema.json
var assetOverridesSchema string

// Cause is one structured validation failure reported by the schema engine.
type Cause struct {
	InstanceLocation string
	KeywordLocation  string
	Message          string
}

// DocumentError is the fatal result of a failed schema check. It aborts the
// load of the offending document; the caller reports it to the user.
type DocumentError struct {
	Schema string
	Causes []Cause
}

// Error implements the error interface for DocumentError.
func (e *DocumentError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "document failed %s schema validation:", e.Schema)
	for _, c := range e.Causes {
		fmt.Fprintf(&b, "\n- at %q: %s", c.InstanceLocation, c.Message)
	}
	return b.String()
}

// Validator holds the compiled registry and override schemas. Compile once,
// validate many times; the zero value is not usable.
type Validator struct {
	registry  *jsonschema.Schema
	overrides *jsonschema.Schema
}

// NewValidator compiles the embedded schemas. A compilation failure is a
// programmer error in the embedded documents, not user input, so callers
// treat it as fatal at startup.
func NewValidator() (*Validator, error) {
	registry, err := jsonschema.CompileString("registry-profile.schema.json", registryProfileSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile registry profile schema: %w", err)
	}
	overrides, err := jsonschema.CompileString("asset-overrides.schema.json", assetOverridesSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile asset overrides schema: %w", err)
	}
	return &Validator{registry: registry, overrides: overrides}, nil
}

// ValidateRegistryDocument checks a raw registry profile document against
// the registry schema.
func (v *Validator) ValidateRegistryDocument(raw []byte) error {
	return validate(v.registry, "registry profile", raw)
}

// ValidateOverrideDocument checks a raw asset override document against the
// asset overrides schema.
func (v *Validator) ValidateOverrideDocument(raw []byte) error {
	return validate(v.overrides, "asset overrides", raw)
}

func validate(sch *jsonschema.Schema, name string, raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%s document is not valid JSON: %w", name, err)
	}

	err := sch.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("%s document validation failed: %w", name, err)
	}
	return &DocumentError{Schema: name, Causes: leafCauses(verr)}
}

// leafCauses flattens a validation error tree into its leaf failures. The
// intermediate nodes only restate which branch failed, so the leaves carry
// all the information a user needs.
func leafCauses(verr *jsonschema.ValidationError) []Cause {
	if len(verr.Causes) == 0 {
		return []Cause{{
			InstanceLocation: verr.InstanceLocation,
			KeywordLocation:  verr.KeywordLocation,
			Message:          verr.Message,
		}}
	}
	var causes []Cause
	for _, c := range verr.Causes {
		causes = append(causes, leafCauses(c)...)
	}
	return causes
}
