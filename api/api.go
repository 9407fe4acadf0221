// Package api holds the HTTP contract of the handoff service.
package api

import _ "embed"

//go:embed openapi.json
var OpenAPI []byte
