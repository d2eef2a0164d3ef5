package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"listing-importer/internal/adapters/shopify"
	"listing-importer/internal/app/reconcile"
	"listing-importer/internal/app/resolver"
	"listing-importer/internal/domain/model"
	"listing-importer/internal/logging"
)

// maxMediaPerProduct is the destination's per-call media creation limit.
const maxMediaPerProduct = 100

type ImportListingsService interface {
	Run(ctx context.Context, urls []string) []model.ImportResult
	History() []model.ImportResult
}

type Client struct {
	resolver      *resolver.Resolver
	shopifyClient shopify.ClientService
	history       *History
	logger        logging.LoggerService
}

func NewImportListings(res *resolver.Resolver, shopifyClient shopify.ClientService, history *History, logger logging.LoggerService) ImportListingsService {
	if history == nil {
		history = NewHistory(DefaultHistorySize)
	}
	return &Client{
		resolver:      res,
		shopifyClient: shopifyClient,
		history:       history,
		logger:        logger,
	}
}

// Run imports each URL strictly in order. A URL's failure is captured in its
// result and never aborts the rest of the batch.
func (c *Client) Run(ctx context.Context, urls []string) []model.ImportResult {
	results := make([]model.ImportResult, 0, len(urls))
	for _, url := range urls {
		result := c.importOne(ctx, url)
		c.history.Push(result)
		results = append(results, result)
	}
	return results
}

func (c *Client) History() []model.ImportResult {
	return c.history.List()
}

func (c *Client) importOne(ctx context.Context, url string) model.ImportResult {
	result := model.ImportResult{
		ID:         uuid.NewString(),
		SourceURL:  url,
		Status:     model.StatusFailed,
		ImportedAt: time.Now().UTC(),
	}

	tail, ok := resolver.ParseNumericTail(url)
	if !ok {
		result.Error = resolver.ErrNoIdentifier.Error()
		c.logger.LogError(fmt.Sprintf("import %s", url), resolver.ErrNoIdentifier)
		return result
	}
	result.LegacyItemID = tail

	resolved, err := c.resolver.Resolve(ctx, url, tail)
	if err != nil {
		result.Error = err.Error()
		c.logger.LogError(fmt.Sprintf("import %s: resolution failed", url), err)
		return result
	}

	canonical, err := reconcile.Normalize(resolved)
	if err != nil {
		result.Error = err.Error()
		c.logger.LogError(fmt.Sprintf("import %s: reconciliation failed", url), err)
		return result
	}
	payload := reconcile.ToPayload(canonical)

	product, err := c.shopifyClient.CreateProduct(ctx, payload)
	if err != nil {
		result.Error = err.Error()
		c.logger.LogError(fmt.Sprintf("import %s: product create failed", url), err)
		return result
	}
	result.ProductID = product.ID
	result.Handle = product.Handle
	result.Title = product.Title
	result.ShopifyURL = product.AdminURL

	mediaByURL, err := c.createMedia(ctx, product.ID, payload)
	if err != nil {
		result.Error = err.Error()
		c.logger.LogError(fmt.Sprintf("import %s: media create failed", url), err)
		return result
	}

	variants, err := c.shopifyClient.BulkCreateVariants(ctx, product.ID, payload.Variants)
	if err != nil {
		result.Error = err.Error()
		c.logger.LogError(fmt.Sprintf("import %s: variant create failed", url), err)
		return result
	}
	result.Variants = len(variants)

	if err := c.associateVariantMedia(ctx, product.ID, payload, variants, mediaByURL); err != nil {
		result.Error = err.Error()
		c.logger.LogError(fmt.Sprintf("import %s: media association failed", url), err)
		return result
	}

	result.Status = model.StatusCreated
	if payload.Meta.DroppedVariants > 0 {
		result.Error = fmt.Sprintf("warning: %d variants dropped over the %d variant limit",
			payload.Meta.DroppedVariants, reconcile.MaxVariants)
	}

	c.logger.LogSuccess(fmt.Sprintf("imported %s as %s variants=%d", url, product.ID, result.Variants))
	return result
}

// createMedia builds the ordered deduplicated media list (each variant's first
// image, then the product-level images), capped at the media limit, creates it
// and returns a source-url → media-id map.
func (c *Client) createMedia(ctx context.Context, productID string, payload model.ProductPayload) (map[string]string, error) {
	var urls []string
	seen := map[string]bool{}
	add := func(u string) {
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		urls = append(urls, u)
	}
	for _, variant := range payload.Variants {
		add(variant.ImageURL)
	}
	for _, u := range payload.ImageURLs {
		add(u)
	}
	if len(urls) > maxMediaPerProduct {
		urls = urls[:maxMediaPerProduct]
	}
	if len(urls) == 0 {
		return map[string]string{}, nil
	}

	created, err := c.shopifyClient.CreateMedia(ctx, productID, urls)
	if err != nil {
		return nil, err
	}

	byURL := make(map[string]string, len(created))
	for _, m := range created {
		if m.SourceURL != "" && m.ID != "" {
			byURL[m.SourceURL] = m.ID
		}
	}
	return byURL, nil
}

// associateVariantMedia rebuilds each created variant's key from its returned
// option selections and SKU, looks up that key's image URLs, translates them
// to media ids and flushes all associations in one batch.
func (c *Client) associateVariantMedia(ctx context.Context, productID string, payload model.ProductPayload, variants []shopify.CreatedVariant, mediaByURL map[string]string) error {
	assetsByKey := make(map[string][]string, len(payload.VariantAssets))
	for _, assets := range payload.VariantAssets {
		assetsByKey[assets.Key] = assets.ImageURLs
	}

	var batch []shopify.VariantMedia
	for _, variant := range variants {
		key := model.BuildVariantKey(variant.SelectedOptions, variant.SKU)
		var mediaIDs []string
		for _, u := range assetsByKey[key] {
			if id, ok := mediaByURL[u]; ok {
				mediaIDs = append(mediaIDs, id)
			}
		}
		if len(mediaIDs) > 0 {
			batch = append(batch, shopify.VariantMedia{VariantID: variant.ID, MediaIDs: mediaIDs})
		}
	}
	if len(batch) == 0 {
		return nil
	}
	return c.shopifyClient.AppendVariantMedia(ctx, productID, batch)
}
