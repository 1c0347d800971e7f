package placespec

import (
	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed place.schema.json
var placeSchemaJSON string

var placeSchema = jsonschema.MustCompileString("place.schema.json", placeSchemaJSON)
