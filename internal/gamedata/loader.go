package gamedata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidData wraps schema violations in a catalog file.
var ErrInvalidData = errors.New("invalid catalog data")

// schemaFor returns the schema path for a catalog, e.g. items.json is
// checked against schemas/items.schema.json.
func schemaFor(filename string) string {
	return path.Join("schemas", strings.TrimSuffix(filename, ".json")+".schema.json")
}

// Load reads an embedded catalog file, validates it against its schema
// when one exists, and unmarshals it into T.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}
	return decode[T](filename, content)
}

// MustLoad is Load for data the program cannot run without.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}

func decode[T any](filename string, content []byte) (T, error) {
	var result T

	if err := validate(filename, content); err != nil {
		return result, err
	}
	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}
	return result, nil
}

func validate(filename string, content []byte) error {
	schemaPath := schemaFor(filename)
	schemaText, err := dataFS.ReadFile(schemaPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read schema %s: %w", schemaPath, err)
	}

	schema, err := jsonschema.CompileString(schemaPath, string(schemaText))
	if err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", schemaPath, err)
	}

	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidData, filename, err)
	}
	return nil
}
