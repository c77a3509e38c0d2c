package card

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaJSON is the JSON Schema of a fully conforming card record.
const SchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "First Name": {"type": "string"},
    "Last Name": {"type": "string"},
    "Designation": {"type": "string"},
    "Company Name": {"type": "string"},
    "Email": {"type": "string"},
    "Contact Number": {"type": "string"},
    "Fax Number": {"type": "string"},
    "Website": {"type": "string"},
    "Address": {"type": "string"},
    "Social Media Handle": {"type": "string"}
  },
  "additionalProperties": false
}`

var recordSchema = jsonschema.MustCompileString("card.json", SchemaJSON)

// Drift reports how a decoded model object deviates from the card schema:
// unknown keys and values that are not strings. It only describes the
// deviations; doc is never filtered or repaired. A nil result means doc
// conforms.
func Drift(doc map[string]any) []string {
	if doc == nil {
		return nil
	}
	err := recordSchema.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []string{err.Error()}
	}

	var out []string
	collectLeaves(verr, &out)
	sort.Strings(out)
	return out
}

func collectLeaves(e *jsonschema.ValidationError, out *[]string) {
	if len(e.Causes) == 0 {
		loc := e.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", loc, strings.TrimSpace(e.Message)))
		return
	}
	for _, c := range e.Causes {
		collectLeaves(c, out)
	}
}
