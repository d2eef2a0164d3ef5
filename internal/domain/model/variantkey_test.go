package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildVariantKey_CaseAndWhitespaceInsensitive(t *testing.T) {
	a := BuildVariantKey([]OptionValue{{Name: "Color", Value: " Red "}}, "SKU-1")
	b := BuildVariantKey([]OptionValue{{Name: "color", Value: "red"}}, "sku-1")
	assert.Equal(t, a, b)
}

func TestBuildVariantKey_Deterministic(t *testing.T) {
	options := []OptionValue{
		{Name: "Color", Value: "Red"},
		{Name: "Size", Value: "XL"},
	}
	assert.Equal(t,
		BuildVariantKey(options, "abc"),
		BuildVariantKey(options, "abc"))
}

func TestBuildVariantKey_OrderMatters(t *testing.T) {
	a := BuildVariantKey([]OptionValue{
		{Name: "Color", Value: "Red"},
		{Name: "Size", Value: "XL"},
	}, "")
	b := BuildVariantKey([]OptionValue{
		{Name: "Size", Value: "XL"},
		{Name: "Color", Value: "Red"},
	}, "")
	assert.NotEqual(t, a, b)
}

func TestBuildVariantKey_EmptyNameFallsBackToSentinel(t *testing.T) {
	key := BuildVariantKey([]OptionValue{{Name: "", Value: "Default Title"}}, "")
	assert.Equal(t, "title=default title", key)
}

func TestBuildVariantKey_SKUSegment(t *testing.T) {
	withSKU := BuildVariantKey([]OptionValue{{Name: "Color", Value: "Red"}}, " ABC ")
	withoutSKU := BuildVariantKey([]OptionValue{{Name: "Color", Value: "Red"}}, "")
	assert.Equal(t, "color=red|sku:abc", withSKU)
	assert.Equal(t, "color=red", withoutSKU)
}
