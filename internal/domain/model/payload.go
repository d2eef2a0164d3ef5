package model

// ProductPayload is the destination-platform input shape produced by the
// reconciler and consumed by the Shopify adapter.
type ProductPayload struct {
	Title           string
	DescriptionHTML string
	Vendor          string
	Tags            []string
	ImageURLs       []string
	Options         []ProductOption
	Variants        []VariantInput
	VariantAssets   []VariantAssets
	Meta            PayloadMeta
}

type ProductOption struct {
	Name   string
	Values []string
}

type OptionValue struct {
	Name  string
	Value string
}

type VariantInput struct {
	SKU          string
	Price        string
	OptionValues []OptionValue
	ImageURL     string
}

// VariantAssets keeps the full image list for a variant keyed by its
// VariantKey, so media can be associated back after creation.
type VariantAssets struct {
	Key       string
	ImageURLs []string
}

type PayloadMeta struct {
	DroppedVariants   int
	DroppedDuplicates int
}
