package resume

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed record.schema.json
var recordSchemaJSON []byte

var loadRecordSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(recordSchemaJSON))
})

// DecodeRecord validates data against the record schema and decodes it.
// Ids must be unique within each list.
func DecodeRecord(data []byte) (Record, error) {
	schema, err := loadRecordSchema()
	if err != nil {
		return Record{}, fmt.Errorf("load record schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Record{}, &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if !result.Valid() {
		verr := &ValidationError{}
		for _, re := range result.Errors() {
			verr.Errors = append(verr.Errors, FieldError{Field: re.Field(), Message: re.Description()})
		}
		return Record{}, verr
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	if err := checkUniqueIDs("experience", rec.Experience); err != nil {
		return Record{}, err
	}
	if err := checkUniqueIDs("education", rec.Education); err != nil {
		return Record{}, err
	}
	if err := checkUniqueIDs("skills", rec.Skills); err != nil {
		return Record{}, err
	}
	return rec.Normalize(), nil
}

func checkUniqueIDs[T Entry](list string, data []T) error {
	seen := make(map[string]struct{}, len(data))
	for _, entry := range data {
		if _, dup := seen[entry.EntryID()]; dup {
			return fmt.Errorf("%w: %s %q", ErrDuplicateID, list, entry.EntryID())
		}
		seen[entry.EntryID()] = struct{}{}
	}
	return nil
}
