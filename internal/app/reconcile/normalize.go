package reconcile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"listing-importer/internal/domain/model"
)

// ErrMissingItems is returned for a resolved group with no member listings.
var ErrMissingItems = errors.New("item group has no member listings")

const (
	maxOptionAxes     = 3
	maxOptionNameLen  = 30
	maxOptionValues   = 50
	defaultCurrency   = "USD"
	fallbackSKUPrefix = "IMPORT"
)

// Aspects that describe a listing but never distinguish purchasable variants.
var deniedAspects = map[string]bool{
	"brand":                         true,
	"model":                         true,
	"type":                          true,
	"mpn":                           true,
	"manufacturer part number":      true,
	"upc":                           true,
	"ean":                           true,
	"isbn":                          true,
	"country/region of manufacture": true,
	"features":                      true,
	"california prop 65 warning":    true,
	"unit quantity":                 true,
	"unit type":                     true,
}

// Normalize maps a resolved single listing or listing group into the
// canonical product form.
func Normalize(resolved model.ResolvedListing) (model.CanonicalProduct, error) {
	if resolved.IsGroup {
		return normalizeGroup(resolved.Group)
	}
	return normalizeSingle(resolved.Item), nil
}

func normalizeSingle(item model.Listing) model.CanonicalProduct {
	images := listingImages(item)
	return model.CanonicalProduct{
		Title:       item.Title,
		Description: item.Description,
		Vendor:      brandOf(item),
		Tags:        deriveTags(item),
		ImageURLs:   images,
		Variants: []model.CanonicalVariant{
			{
				SKU:       chooseSKU(item),
				Price:     normalizePrice(item.Price),
				Currency:  currencyOr(item.Currency, defaultCurrency),
				Options:   map[string]string{},
				ImageURL:  firstOf(images),
				ImageURLs: images,
			},
		},
	}
}

// aspectAgg tracks one aspect name across all group members: distinct trimmed
// values in first-seen order plus the order the name itself first appeared.
type aspectAgg struct {
	display string
	values  []string
	seen    map[string]bool
	order   int
}

func normalizeGroup(group model.ListingGroup) (model.CanonicalProduct, error) {
	if len(group.Items) == 0 {
		return model.CanonicalProduct{}, ErrMissingItems
	}

	aggs := aggregateAspects(group.Items)
	axes := selectAxes(aggs)

	first := group.Items[0]
	product := model.CanonicalProduct{
		Title:        group.Title,
		Description:  group.Description,
		Vendor:       brandOf(first),
		Tags:         deriveTags(first),
		OptionsOrder: axes,
	}

	seenImages := map[string]bool{}
	for _, item := range group.Items {
		images := listingImages(item)
		for _, img := range images {
			if !seenImages[img] {
				seenImages[img] = true
				product.ImageURLs = append(product.ImageURLs, img)
			}
		}

		options := map[string]string{}
		for _, axis := range axes {
			if v, ok := aspectValue(item, axis); ok {
				options[axis] = v
			}
		}

		price := item.Price
		currency := item.Currency
		if strings.TrimSpace(price) == "" {
			price = first.Price
		}
		if strings.TrimSpace(currency) == "" {
			currency = first.Currency
		}

		product.Variants = append(product.Variants, model.CanonicalVariant{
			SKU:       chooseSKU(item),
			Price:     normalizePrice(price),
			Currency:  currencyOr(currency, defaultCurrency),
			Options:   options,
			ImageURL:  firstOf(images),
			ImageURLs: images,
		})
	}

	return product, nil
}

func aggregateAspects(items []model.Listing) []*aspectAgg {
	byName := map[string]*aspectAgg{}
	var ordered []*aspectAgg

	for _, item := range items {
		for _, aspect := range item.Aspects {
			name := strings.TrimSpace(aspect.Name)
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			agg, ok := byName[key]
			if !ok {
				agg = &aspectAgg{
					display: name,
					seen:    map[string]bool{},
					order:   len(ordered),
				}
				byName[key] = agg
				ordered = append(ordered, agg)
			}
			for _, value := range aspect.Values {
				v := strings.TrimSpace(value)
				if v == "" || agg.seen[v] {
					continue
				}
				agg.seen[v] = true
				agg.values = append(agg.values, v)
			}
		}
	}
	return ordered
}

// selectAxes picks up to three option axes: only aspects that actually vary,
// excluding descriptive-but-non-purchasing names and any aspect whose name or
// value set is out of bounds, ranked by value cardinality then first-seen.
func selectAxes(aggs []*aspectAgg) []string {
	var eligible []*aspectAgg
	for _, agg := range aggs {
		if len(agg.values) < 2 {
			continue
		}
		if deniedAspects[strings.ToLower(agg.display)] {
			continue
		}
		if len(agg.display) > maxOptionNameLen || len(agg.values) > maxOptionValues {
			continue
		}
		eligible = append(eligible, agg)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if len(eligible[i].values) != len(eligible[j].values) {
			return len(eligible[i].values) > len(eligible[j].values)
		}
		return eligible[i].order < eligible[j].order
	})

	if len(eligible) > maxOptionAxes {
		eligible = eligible[:maxOptionAxes]
	}

	axes := make([]string, 0, len(eligible))
	for _, agg := range eligible {
		axes = append(axes, agg.display)
	}
	return axes
}

func aspectValue(item model.Listing, name string) (string, bool) {
	for _, aspect := range item.Aspects {
		if strings.EqualFold(strings.TrimSpace(aspect.Name), name) {
			for _, value := range aspect.Values {
				if v := strings.TrimSpace(value); v != "" {
					return v, true
				}
			}
		}
	}
	return "", false
}

// chooseSKU picks the most stable identifier available for a listing.
func chooseSKU(item model.Listing) string {
	for _, id := range []string{item.MPN, item.EPID, item.LegacyItemID, item.ItemID} {
		if s := strings.TrimSpace(id); s != "" {
			return s
		}
	}
	return fmt.Sprintf("%s-%d", fallbackSKUPrefix, time.Now().UnixNano())
}

func normalizePrice(raw string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return "0.00"
	}
	return d.StringFixed(2)
}

func currencyOr(currency, def string) string {
	if c := strings.TrimSpace(currency); c != "" {
		return c
	}
	return def
}

func deriveTags(item model.Listing) []string {
	var tags []string
	seen := map[string]bool{}
	add := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[strings.ToLower(tag)] {
			return
		}
		seen[strings.ToLower(tag)] = true
		tags = append(tags, tag)
	}
	for _, segment := range strings.Split(item.CategoryPath, "/") {
		add(segment)
	}
	add(brandOf(item))
	return tags
}

func brandOf(item model.Listing) string {
	if b := strings.TrimSpace(item.Brand); b != "" {
		return b
	}
	if v, ok := aspectValue(item, "Brand"); ok {
		return v
	}
	return ""
}

func listingImages(item model.Listing) []string {
	var images []string
	seen := map[string]bool{}
	for _, img := range append([]string{item.ImageURL}, item.ExtraImages...) {
		img = strings.TrimSpace(img)
		if img == "" || seen[img] {
			continue
		}
		seen[img] = true
		images = append(images, img)
	}
	return images
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
