// Package schemas embeds the JSON Schema documents describing accepted input.
package schemas

import _ "embed"

// Resume is the JSON Schema for a resume document.
//
//go:embed resume.schema.json
var Resume string
