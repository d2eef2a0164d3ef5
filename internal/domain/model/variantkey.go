package model

import "strings"

const (
	// DefaultAxisName is the sentinel option axis used when a product has no
	// inferred purchasing options.
	DefaultAxisName  = "Title"
	DefaultAxisValue = "Default Title"
)

// BuildVariantKey builds a deterministic key from a variant's option
// selections and SKU. Names and values are trimmed and lower-cased so the key
// is insensitive to casing and stray whitespace; an empty option name falls
// back to the sentinel axis. Two variants with the same key are duplicates.
func BuildVariantKey(options []OptionValue, sku string) string {
	parts := make([]string, 0, len(options)+1)
	for _, o := range options {
		name := strings.ToLower(strings.TrimSpace(o.Name))
		if name == "" {
			name = strings.ToLower(DefaultAxisName)
		}
		value := strings.ToLower(strings.TrimSpace(o.Value))
		parts = append(parts, name+"="+value)
	}
	if s := strings.ToLower(strings.TrimSpace(sku)); s != "" {
		parts = append(parts, "sku:"+s)
	}
	return strings.Join(parts, "|")
}
