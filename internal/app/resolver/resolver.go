package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"listing-importer/internal/adapters/ebay"
	"listing-importer/internal/domain/model"
	"listing-importer/internal/logging"
)

// ErrNoIdentifier is returned when a URL carries no parseable listing id.
var ErrNoIdentifier = errors.New("url does not contain a listing identifier")

const (
	categoryLegacy = "legacy"
	categoryGroup  = "group"
	categoryItem   = "item"
	categoryScrape = "scrape"
)

// Attempt is one resolution try: which id was used, against which lookup
// category, and how it went. Err nil means success.
type Attempt struct {
	Category  string
	Label     string
	Candidate string
	Err       error
}

func (a Attempt) String() string {
	outcome := "ok"
	if a.Err != nil {
		outcome = a.Err.Error()
	}
	return fmt.Sprintf("%s [%s=%s]: %s", a.Label, a.Category, a.Candidate, outcome)
}

// ExhaustedError reports that every resolution attempt failed, carrying the
// ordered attempt trail as the operator-visible diagnostic.
type ExhaustedError struct {
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.String())
	}
	return "listing resolution exhausted: " + strings.Join(parts, "; ")
}

// resolution is the per-URL state machine: dedup sets per lookup category, the
// ordered attempt log, the resolved cell, and the cached scrape result. It
// never outlives a single Resolve call.
type resolution struct {
	url         string
	numericTail string

	resolved *model.ResolvedListing
	tried    map[string]map[string]bool
	attempts []Attempt

	scraped     model.ListingIdentifiers
	scrapeTried bool
}

func newResolution(rawURL, numericTail string) *resolution {
	return &resolution{
		url:         rawURL,
		numericTail: numericTail,
		tried: map[string]map[string]bool{
			categoryLegacy: {},
			categoryGroup:  {},
			categoryItem:   {},
		},
	}
}

func (st *resolution) alreadyTried(category, id string) bool {
	return st.tried[category][id]
}

func (st *resolution) markTried(category, id string) {
	st.tried[category][id] = true
}

func (st *resolution) log(category, label, candidate string, err error) {
	st.attempts = append(st.attempts, Attempt{
		Category:  category,
		Label:     label,
		Candidate: candidate,
		Err:       err,
	})
}

func (st *resolution) lastError(category string) string {
	for i := len(st.attempts) - 1; i >= 0; i-- {
		a := st.attempts[i]
		if a.Category == category && a.Err != nil {
			return a.Err.Error()
		}
	}
	return ""
}

// candidate is one (label, id, fetch) tuple for the attempt runner.
type candidate struct {
	label string
	id    string
	fetch func(ctx context.Context, id string) (model.ResolvedListing, error)
}

type Resolver struct {
	ebayClient ebay.ClientService
	logger     logging.LoggerService
}

func NewResolver(ebayClient ebay.ClientService, logger logging.LoggerService) *Resolver {
	return &Resolver{
		ebayClient: ebayClient,
		logger:     logger,
	}
}

// Resolve walks the fallback chain for one URL: legacy lookup, group recovery
// from the error hint, group lookup by the numeric tail, scrape-assisted
// retries, then direct item fetches. The first success wins; ids already tried
// within the same category are skipped.
func (r *Resolver) Resolve(ctx context.Context, rawURL, numericTail string) (model.ResolvedListing, error) {
	st := newResolution(rawURL, numericTail)

	if !r.runAttempts(ctx, st, categoryLegacy, []candidate{
		{label: "legacy lookup", id: numericTail, fetch: r.fetchLegacy},
	}) {
		r.recover(ctx, st)
	}

	if st.resolved == nil {
		r.logger.LogWarning(fmt.Sprintf("resolution exhausted for %s after %d attempts", rawURL, len(st.attempts)))
		return model.ResolvedListing{}, &ExhaustedError{Attempts: st.attempts}
	}

	resolved := *st.resolved

	// A single item that declares group membership is superseded by the group
	// payload, unless that group id already failed during this resolution.
	if !resolved.IsGroup && resolved.Item.ItemGroupID != "" {
		if r.tryGroup(ctx, st, "group from resolved item", resolved.Item.ItemGroupID) {
			resolved = *st.resolved
		}
	}

	return resolved, nil
}

func (r *Resolver) recover(ctx context.Context, st *resolution) {
	if hint, ok := ParseGroupIDFromError(st.lastError(categoryLegacy)); ok {
		if r.tryGroup(ctx, st, "group from error hint", hint) {
			return
		}
	}

	if r.tryGroup(ctx, st, "group from listing id", st.numericTail) {
		return
	}

	scraped := r.scrape(ctx, st)
	if scraped.LegacyItemID != "" && scraped.LegacyItemID != st.numericTail {
		if r.runAttempts(ctx, st, categoryLegacy, []candidate{
			{label: "legacy from scrape", id: scraped.LegacyItemID, fetch: r.fetchLegacy},
		}) {
			return
		}
	}
	if scraped.ItemGroupID != "" {
		if r.tryGroup(ctx, st, "group from scrape", scraped.ItemGroupID) {
			return
		}
	}

	r.runAttempts(ctx, st, categoryItem, []candidate{
		{label: "item from scrape", id: scraped.ItemID, fetch: r.fetchItem},
		{label: "item from scraped legacy id", id: synthesizeItemID(scraped.LegacyItemID), fetch: r.fetchItem},
		{label: "item from listing id", id: synthesizeItemID(st.numericTail), fetch: r.fetchItem},
		{label: "item from raw listing id", id: st.numericTail, fetch: r.fetchItem},
	})
}

// runAttempts executes candidates in order within one dedup category, skipping
// empty or already-tried ids and logging every outcome. Returns true as soon
// as one succeeds.
func (r *Resolver) runAttempts(ctx context.Context, st *resolution, category string, candidates []candidate) bool {
	for _, c := range candidates {
		if c.id == "" || st.alreadyTried(category, c.id) {
			continue
		}
		st.markTried(category, c.id)
		resolved, err := c.fetch(ctx, c.id)
		st.log(category, c.label, c.id, err)
		if err == nil {
			st.resolved = &resolved
			return true
		}
	}
	return false
}

// tryGroup attempts one group id against the group-detail endpoint, then the
// items-by-group endpoint. Both share one dedup entry since they answer for
// the same id.
func (r *Resolver) tryGroup(ctx context.Context, st *resolution, label, groupID string) bool {
	if groupID == "" || st.alreadyTried(categoryGroup, groupID) {
		return false
	}
	st.markTried(categoryGroup, groupID)

	group, err := r.ebayClient.FetchGroupDetail(ctx, groupID)
	st.log(categoryGroup, label+" (detail)", groupID, err)
	if err != nil {
		group, err = r.ebayClient.FetchItemsByGroup(ctx, groupID)
		st.log(categoryGroup, label+" (items)", groupID, err)
	}
	if err != nil {
		return false
	}

	st.resolved = &model.ResolvedListing{IsGroup: true, Group: group}
	return true
}

// scrape fetches the listing page at most once per resolution and caches the
// extracted identifiers for both the retry and direct-fetch stages.
func (r *Resolver) scrape(ctx context.Context, st *resolution) model.ListingIdentifiers {
	if st.scrapeTried {
		return st.scraped
	}
	st.scrapeTried = true

	html, err := r.ebayClient.FetchListingPage(ctx, st.url)
	if err != nil {
		st.log(categoryScrape, "page scrape", st.url, err)
		return model.ListingIdentifiers{}
	}

	ids, ok := IdentifiersFromHTML(html)
	if !ok {
		st.log(categoryScrape, "page scrape", st.url, errors.New("no identifiers found in page"))
		return model.ListingIdentifiers{}
	}

	st.log(categoryScrape, "page scrape", st.url, nil)
	st.scraped = ids
	return ids
}

func (r *Resolver) fetchLegacy(ctx context.Context, id string) (model.ResolvedListing, error) {
	item, err := r.ebayClient.FetchByLegacyID(ctx, id)
	if err != nil {
		return model.ResolvedListing{}, err
	}
	return model.ResolvedListing{Item: item}, nil
}

func (r *Resolver) fetchItem(ctx context.Context, id string) (model.ResolvedListing, error) {
	item, err := r.ebayClient.FetchItem(ctx, id)
	if err != nil {
		return model.ResolvedListing{}, err
	}
	return model.ResolvedListing{Item: item}, nil
}

func synthesizeItemID(legacyID string) string {
	if legacyID == "" {
		return ""
	}
	return fmt.Sprintf("v1|%s|0", legacyID)
}
