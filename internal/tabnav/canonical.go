package tabnav

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CanonicalID normalizes a tab id for identity comparison.
//
// Ids are trimmed of surrounding whitespace and NFC normalized so that
// visually identical ids with different Unicode compositions (e.g.
// "café" as NFC vs NFD) resolve to the same tab. All id lookups in this
// package go through CanonicalID; raw ids are preserved only for
// display.
func CanonicalID(id string) string {
	return norm.NFC.String(strings.TrimSpace(id))
}
