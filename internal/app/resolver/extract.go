package resolver

import (
	"net/url"
	"regexp"

	"listing-importer/internal/domain/model"
)

var (
	trailingDigitsRe = regexp.MustCompile(`(\d{9,})/?$`)
	itmSegmentRe     = regexp.MustCompile(`/itm/(\d+)(?:[/?#]|$)`)
	groupIDHintRe    = regexp.MustCompile(`item_group_id=(\d{6,})`)

	// Listing pages embed identifiers as JSON-ish string assignments with
	// either quote style; this is best-effort scraping, not structured parsing.
	scrapedItemIDRe   = regexp.MustCompile(`["']itemId["']\s*:\s*["']([^"']+)["']`)
	scrapedGroupIDRe  = regexp.MustCompile(`["']itemGroupId["']\s*:\s*["'](\d+)["']`)
	scrapedLegacyIDRe = regexp.MustCompile(`["']legacyItemId["']\s*:\s*["'](\d+)["']`)
)

// ParseNumericTail extracts the trailing run of at least nine digits from the
// URL path, falling back to an /itm/<digits> segment elsewhere in the path.
func ParseNumericTail(rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	if m := trailingDigitsRe.FindStringSubmatch(parsed.Path); m != nil {
		return m[1], true
	}
	if m := itmSegmentRe.FindStringSubmatch(parsed.Path); m != nil {
		return m[1], true
	}
	return "", false
}

// ParseGroupIDFromError extracts an item_group_id hint embedded in upstream
// error text. The marketplace rejects legacy lookups of grouped listings with
// an error that names the group.
func ParseGroupIDFromError(text string) (string, bool) {
	if m := groupIDHintRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// IdentifiersFromHTML scans raw listing markup for embedded itemId,
// itemGroupId and legacyItemId assignments.
func IdentifiersFromHTML(html string) (model.ListingIdentifiers, bool) {
	var ids model.ListingIdentifiers
	if m := scrapedItemIDRe.FindStringSubmatch(html); m != nil {
		ids.ItemID = m[1]
	}
	if m := scrapedGroupIDRe.FindStringSubmatch(html); m != nil {
		ids.ItemGroupID = m[1]
	}
	if m := scrapedLegacyIDRe.FindStringSubmatch(html); m != nil {
		ids.LegacyItemID = m[1]
	}
	return ids, !ids.Empty()
}
