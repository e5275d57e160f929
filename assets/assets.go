// Package assets holds files embedded into the binary.
package assets

import _ "embed"

// Template is the default offer letter used when no template path is configured.
//
//go:embed template_offer_letter.docx
var Template []byte
