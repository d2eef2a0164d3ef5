package reconcile

import (
	"strings"

	"listing-importer/internal/domain/model"
)

// MaxVariants is the destination platform's hard per-product variant limit.
const MaxVariants = 100

const defaultOptionValue = "Default"

// ToPayload projects a canonical product into the destination input shape:
// option descriptors per inferred axis (or one synthetic default axis),
// variants deduplicated by VariantKey with the first occurrence winning, the
// variant list capped at MaxVariants, and the full per-variant image lists
// retained keyed by VariantKey for media association after creation.
func ToPayload(product model.CanonicalProduct) model.ProductPayload {
	payload := model.ProductPayload{
		Title:           product.Title,
		DescriptionHTML: product.Description,
		Vendor:          product.Vendor,
		Tags:            product.Tags,
		ImageURLs:       product.ImageURLs,
	}

	axes := product.OptionsOrder
	if len(axes) == 0 {
		axes = []string{model.DefaultAxisName}
	}
	payload.Options = buildOptions(axes, product.Variants)

	seenKeys := map[string]bool{}
	for _, variant := range product.Variants {
		optionValues := make([]model.OptionValue, 0, len(axes))
		for _, axis := range axes {
			value := variant.Options[axis]
			if strings.TrimSpace(value) == "" {
				value = axisFallback(axis)
			}
			optionValues = append(optionValues, model.OptionValue{Name: axis, Value: value})
		}

		key := model.BuildVariantKey(optionValues, variant.SKU)
		if seenKeys[key] {
			payload.Meta.DroppedDuplicates++
			continue
		}
		seenKeys[key] = true

		images := variantImages(variant)
		payload.Variants = append(payload.Variants, model.VariantInput{
			SKU:          variant.SKU,
			Price:        variant.Price,
			OptionValues: optionValues,
			ImageURL:     firstOf(images),
		})
		payload.VariantAssets = append(payload.VariantAssets, model.VariantAssets{
			Key:       key,
			ImageURLs: images,
		})
	}

	if len(payload.Variants) > MaxVariants {
		payload.Meta.DroppedVariants = len(payload.Variants) - MaxVariants
		payload.Variants = payload.Variants[:MaxVariants]
		payload.VariantAssets = payload.VariantAssets[:MaxVariants]
	}

	return payload
}

// buildOptions lists the distinct observed values per axis in variant order,
// substituting the axis fallback so every option carries at least one value.
func buildOptions(axes []string, variants []model.CanonicalVariant) []model.ProductOption {
	options := make([]model.ProductOption, 0, len(axes))
	for _, axis := range axes {
		var values []string
		seen := map[string]bool{}
		for _, variant := range variants {
			v := strings.TrimSpace(variant.Options[axis])
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			values = append(values, v)
		}
		if len(values) == 0 {
			values = []string{axisFallback(axis)}
		}
		options = append(options, model.ProductOption{Name: axis, Values: values})
	}
	return options
}

func axisFallback(axis string) string {
	if axis == model.DefaultAxisName {
		return model.DefaultAxisValue
	}
	return defaultOptionValue
}

// variantImages is the variant's deduplicated image list: its own images
// first, then its single fallback image.
func variantImages(variant model.CanonicalVariant) []string {
	var images []string
	seen := map[string]bool{}
	for _, img := range append(append([]string{}, variant.ImageURLs...), variant.ImageURL) {
		img = strings.TrimSpace(img)
		if img == "" || seen[img] {
			continue
		}
		seen[img] = true
		images = append(images, img)
	}
	return images
}
