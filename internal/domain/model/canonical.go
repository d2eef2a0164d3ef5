package model

// CanonicalProduct is the normalized intermediate form between a raw
// marketplace payload and the destination product input.
type CanonicalProduct struct {
	Title        string
	Description  string
	Vendor       string
	Tags         []string
	ImageURLs    []string
	Variants     []CanonicalVariant
	OptionsOrder []string
}

type CanonicalVariant struct {
	SKU       string
	Price     string
	Currency  string
	Options   map[string]string
	ImageURL  string
	ImageURLs []string
}
