// Package schemas provides JSON Schema validation for the on-disk profile
// store document. A document that fails validation is treated as corrupt by
// the store and replaced with an empty collection.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed profile_store.schema.json
var storeSchema []byte

// ValidationError reports why a store document failed validation.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("store document invalid: %s", strings.Join(e.Problems, "; "))
}

// ValidateStoreDocument checks a serialized profile collection against the
// embedded schema.
func ValidateStoreDocument(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(storeSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate store document: %w", err)
	}

	if result.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, desc := range result.Errors() {
		verr.Problems = append(verr.Problems, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return verr
}
