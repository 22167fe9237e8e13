// Package api holds the OpenAPI description of the dashboard HTTP API.
package api

import _ "embed"

//go:embed openapi.yml
var Spec []byte
