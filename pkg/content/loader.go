// Package content loads and indexes the personal data library: the jobs
// and projects catalogs plus the personal record.
package content

import (
	_ "embed"
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/catalog.schema.json
var catalogSchema string

//go:embed schemas/personal.schema.json
var personalSchema string

// LoadCatalog reads a jobs or projects catalog from a JSON file.
func LoadCatalog(path string) (catalog *Catalog, err error) {
	// Read file
	var fileData []byte
	fileData, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read catalog file: %s", path)
		return catalog, err
	}

	// Validate against schema
	err = validateSchema(catalogSchema, fileData)
	if err != nil {
		err = errors.Wrapf(err, "catalog validation failed: %s", path)
		return catalog, err
	}

	// Parse JSON
	var items []Item
	err = json.Unmarshal(fileData, &items)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse catalog JSON: %s", path)
		return catalog, err
	}

	// Build the id index, rejecting duplicates
	catalog, err = NewCatalog(items)
	if err != nil {
		err = errors.Wrapf(err, "invalid catalog: %s", path)
		return catalog, err
	}

	return catalog, err
}

// LoadPersonal reads the personal record from a JSON file.
func LoadPersonal(path string) (personal Personal, err error) {
	// Read file
	var fileData []byte
	fileData, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read personal file: %s", path)
		return personal, err
	}

	// Validate against schema
	err = validateSchema(personalSchema, fileData)
	if err != nil {
		err = errors.Wrapf(err, "personal validation failed: %s", path)
		return personal, err
	}

	// Parse JSON
	err = json.Unmarshal(fileData, &personal)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse personal JSON: %s", path)
		return personal, err
	}

	return personal, err
}

// validateSchema checks a JSON document against an embedded JSON Schema.
func validateSchema(schema string, document []byte) (err error) {
	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	var result *gojsonschema.Result
	result, err = gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		err = errors.Wrap(err, "schema validation error")
		return err
	}

	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		err = errors.Errorf("document does not match schema: %s", strings.Join(problems, "; "))
		return err
	}

	return err
}
