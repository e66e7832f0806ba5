package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/words.schema.json
var wordsSchemaJSON []byte

const wordsSchemaURL = "schema://wordiz/words.schema.json"

var (
	wordsSchemaOnce sync.Once
	wordsSchema     *jsonschema.Schema
	wordsSchemaErr  error
)

func compiledWordsSchema() (*jsonschema.Schema, error) {
	wordsSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(wordsSchemaJSON))
		if err != nil {
			wordsSchemaErr = fmt.Errorf("parse words schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(wordsSchemaURL, doc); err != nil {
			wordsSchemaErr = err
			return
		}
		wordsSchema, wordsSchemaErr = c.Compile(wordsSchemaURL)
	})
	return wordsSchema, wordsSchemaErr
}

// validateWordsJSON checks raw words.json against the embedded schema.
func validateWordsJSON(raw []byte) error {
	schema, err := compiledWordsSchema()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return schema.Validate(doc)
}
