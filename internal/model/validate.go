package model

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed plan.schema.json
var planSchema []byte

// ValidateBytes validates a raw JSON payload against plan.schema.json.
func ValidateBytes(raw []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(planSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	// collect errors
	msgs := ""
	for _, e := range res.Errors() {
		msgs += fmt.Sprintf("%s; ", e.String())
	}
	return fmt.Errorf("schema validation failed: %s", msgs)
}

// ParsePlan validates and decodes the structured plan payload returned by
// the generator. Empty or non-conforming payloads fail; nothing partially
// decoded is ever returned.
func ParsePlan(raw []byte) (*CareerPlan, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty plan payload")
	}
	if err := ValidateBytes(raw); err != nil {
		return nil, err
	}

	var plan CareerPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}

	seen := map[int]bool{}
	for _, w := range plan.Weeks {
		if seen[w.WeekNumber] {
			return nil, fmt.Errorf("duplicate week number %d in plan", w.WeekNumber)
		}
		seen[w.WeekNumber] = true
	}

	return &plan, nil
}
