package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"listing-importer/internal/adapters/shopify/dto"
	"listing-importer/internal/config"
	"listing-importer/internal/domain/model"
)

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type productCreateData struct {
	ProductCreate struct {
		Product    *dto.ShopifyProduct    `json:"product"`
		UserErrors []dto.ShopifyUserError `json:"userErrors,omitempty"`
	} `json:"productCreate"`
}

type productCreateMediaData struct {
	ProductCreateMedia struct {
		Media           []dto.Media            `json:"media,omitempty"`
		MediaUserErrors []dto.ShopifyUserError `json:"mediaUserErrors,omitempty"`
	} `json:"productCreateMedia"`
}

type productVariantsBulkCreateData struct {
	ProductVariantsBulkCreate struct {
		ProductVariants []dto.ShopifyVariant   `json:"productVariants,omitempty"`
		UserErrors      []dto.ShopifyUserError `json:"userErrors,omitempty"`
	} `json:"productVariantsBulkCreate"`
}

type productVariantAppendMediaData struct {
	ProductVariantAppendMedia struct {
		Product    *dto.ShopifyProduct    `json:"product,omitempty"`
		UserErrors []dto.ShopifyUserError `json:"userErrors,omitempty"`
	} `json:"productVariantAppendMedia"`
}

// CreatedProduct is what the orchestrator needs back from productCreate.
type CreatedProduct struct {
	ID       string
	Handle   string
	Title    string
	AdminURL string
}

// CreatedMedia pairs a created media id with the source URL it was built from.
type CreatedMedia struct {
	ID        string
	SourceURL string
}

type CreatedVariant struct {
	ID              string
	SKU             string
	SelectedOptions []model.OptionValue
}

// VariantMedia is one variant→media association for the append batch.
type VariantMedia struct {
	VariantID string
	MediaIDs  []string
}

type ClientService interface {
	CreateProduct(ctx context.Context, payload model.ProductPayload) (CreatedProduct, error)
	CreateMedia(ctx context.Context, productGid string, imageURLs []string) ([]CreatedMedia, error)
	BulkCreateVariants(ctx context.Context, productGid string, variants []model.VariantInput) ([]CreatedVariant, error)
	AppendVariantMedia(ctx context.Context, productGid string, media []VariantMedia) error
}

type Client struct {
	config     config.ShopifyConfig
	httpClient *http.Client
}

func NewClient(cfg config.ShopifyConfig, httpClient *http.Client) ClientService {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

func (c *Client) CreateProduct(ctx context.Context, payload model.ProductPayload) (CreatedProduct, error) {
	title := strings.TrimSpace(payload.Title)
	if title == "" {
		return CreatedProduct{}, errors.New("shopify product title is required")
	}

	input := map[string]any{
		"title":  title,
		"status": "ACTIVE",
	}
	if strings.TrimSpace(payload.DescriptionHTML) != "" {
		input["descriptionHtml"] = payload.DescriptionHTML
	}
	if strings.TrimSpace(payload.Vendor) != "" {
		input["vendor"] = payload.Vendor
	}
	if len(payload.Tags) > 0 {
		input["tags"] = payload.Tags
	}
	if len(payload.Options) > 0 {
		options := make([]map[string]any, 0, len(payload.Options))
		for _, opt := range payload.Options {
			values := make([]map[string]any, 0, len(opt.Values))
			for _, v := range opt.Values {
				values = append(values, map[string]any{"name": v})
			}
			options = append(options, map[string]any{
				"name":   opt.Name,
				"values": values,
			})
		}
		input["productOptions"] = options
	}

	query := `
mutation productCreate($input: ProductInput!) {
	productCreate(input: $input) {
		product { id handle title }
		userErrors { field message }
	}
}`

	var data productCreateData
	err := c.graphqlRequest(ctx, query, map[string]any{
		"input": input,
	}, &data)
	if err != nil {
		return CreatedProduct{}, err
	}
	if err := userErrorsToError("productCreate", data.ProductCreate.UserErrors); err != nil {
		return CreatedProduct{}, err
	}
	product := data.ProductCreate.Product
	if product == nil || strings.TrimSpace(product.ID) == "" {
		return CreatedProduct{}, errors.New("shopify product create returned empty product id")
	}

	return CreatedProduct{
		ID:       product.ID,
		Handle:   product.Handle,
		Title:    product.Title,
		AdminURL: c.adminProductURL(product.ID),
	}, nil
}

func (c *Client) CreateMedia(ctx context.Context, productGid string, imageURLs []string) ([]CreatedMedia, error) {
	if len(imageURLs) == 0 {
		return nil, nil
	}

	media := make([]map[string]any, 0, len(imageURLs))
	for _, u := range imageURLs {
		media = append(media, map[string]any{
			"originalSource":   u,
			"mediaContentType": "IMAGE",
		})
	}

	query := `
mutation productCreateMedia($productId: ID!, $media: [CreateMediaInput!]!) {
	productCreateMedia(productId: $productId, media: $media) {
		media { id mediaContentType status }
		mediaUserErrors { field message }
	}
}`

	var data productCreateMediaData
	err := c.graphqlRequest(ctx, query, map[string]any{
		"productId": productGid,
		"media":     media,
	}, &data)
	if err != nil {
		return nil, err
	}
	if err := userErrorsToError("productCreateMedia", data.ProductCreateMedia.MediaUserErrors); err != nil {
		return nil, err
	}

	// Created media come back in input order; zip them with the source URLs so
	// the orchestrator can translate URLs to media ids.
	created := make([]CreatedMedia, 0, len(data.ProductCreateMedia.Media))
	for i, m := range data.ProductCreateMedia.Media {
		source := ""
		if i < len(imageURLs) {
			source = imageURLs[i]
		}
		created = append(created, CreatedMedia{ID: m.ID, SourceURL: source})
	}
	return created, nil
}

func (c *Client) BulkCreateVariants(ctx context.Context, productGid string, variants []model.VariantInput) ([]CreatedVariant, error) {
	if len(variants) == 0 {
		return nil, nil
	}

	inputs := make([]map[string]any, 0, len(variants))
	for _, v := range variants {
		optionValues := make([]map[string]any, 0, len(v.OptionValues))
		for _, ov := range v.OptionValues {
			optionValues = append(optionValues, map[string]any{
				"optionName": ov.Name,
				"name":       ov.Value,
			})
		}
		input := map[string]any{
			"price":        v.Price,
			"optionValues": optionValues,
		}
		if strings.TrimSpace(v.SKU) != "" {
			input["inventoryItem"] = map[string]any{"sku": v.SKU}
		}
		if strings.TrimSpace(v.ImageURL) != "" {
			input["mediaSrc"] = []string{v.ImageURL}
		}
		inputs = append(inputs, input)
	}

	query := `
mutation productVariantsBulkCreate($productId: ID!, $variants: [ProductVariantsBulkInput!]!, $strategy: ProductVariantsBulkCreateStrategy) {
	productVariantsBulkCreate(productId: $productId, variants: $variants, strategy: $strategy) {
		productVariants { id sku selectedOptions { name value } }
		userErrors { field message }
	}
}`

	var data productVariantsBulkCreateData
	err := c.graphqlRequest(ctx, query, map[string]any{
		"productId": productGid,
		"variants":  inputs,
		"strategy":  "REMOVE_STANDALONE_VARIANT",
	}, &data)
	if err != nil {
		return nil, err
	}
	if err := userErrorsToError("productVariantsBulkCreate", data.ProductVariantsBulkCreate.UserErrors); err != nil {
		return nil, err
	}

	created := make([]CreatedVariant, 0, len(data.ProductVariantsBulkCreate.ProductVariants))
	for _, v := range data.ProductVariantsBulkCreate.ProductVariants {
		cv := CreatedVariant{ID: v.ID, SKU: v.SKU}
		for _, so := range v.SelectedOptions {
			cv.SelectedOptions = append(cv.SelectedOptions, model.OptionValue{Name: so.Name, Value: so.Value})
		}
		created = append(created, cv)
	}
	return created, nil
}

func (c *Client) AppendVariantMedia(ctx context.Context, productGid string, media []VariantMedia) error {
	if len(media) == 0 {
		return nil
	}

	variantMedia := make([]map[string]any, 0, len(media))
	for _, vm := range media {
		variantMedia = append(variantMedia, map[string]any{
			"variantId": vm.VariantID,
			"mediaIds":  vm.MediaIDs,
		})
	}

	query := `
mutation productVariantAppendMedia($productId: ID!, $variantMedia: [ProductVariantAppendMediaInput!]!) {
	productVariantAppendMedia(productId: $productId, variantMedia: $variantMedia) {
		product { id }
		userErrors { field message }
	}
}`

	var data productVariantAppendMediaData
	err := c.graphqlRequest(ctx, query, map[string]any{
		"productId":    productGid,
		"variantMedia": variantMedia,
	}, &data)
	if err != nil {
		return err
	}
	return userErrorsToError("productVariantAppendMedia", data.ProductVariantAppendMedia.UserErrors)
}

func (c *Client) shopifyAPIRequest(ctx context.Context, method string, endpoint string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.config.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("shopify request failed: %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	return respBody, nil
}

func (c *Client) graphqlRequest(ctx context.Context, query string, variables map[string]any, out any) error {
	domain := strings.TrimSpace(c.config.ShopDomain)
	if domain == "" {
		return errors.New("shopify shop domain is empty")
	}
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	domain = strings.TrimRight(domain, "/")
	if c.config.APIVer == "" {
		return errors.New("shopify api version is empty")
	}
	endpoint := domain + "/admin/api/" + c.config.APIVer + "/graphql.json"

	payload := graphQLRequest{
		Query:     strings.TrimSpace(query),
		Variables: variables,
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	raw, err := c.shopifyAPIRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}

	var resp dto.GraphQLResponse[json.RawMessage]
	if err := json.Unmarshal(raw, &resp); err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		return fmt.Errorf("shopify graphql errors: %s", formatGraphQLErrors(resp.Errors))
	}
	if out == nil {
		return nil
	}
	if len(resp.Data) == 0 {
		return errors.New("shopify graphql response missing data")
	}
	return json.Unmarshal(resp.Data, out)
}

var productGidRe = regexp.MustCompile(`(\d+)$`)

func (c *Client) adminProductURL(productGid string) string {
	domain := strings.TrimSpace(c.config.ShopDomain)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimRight(domain, "/")
	id := productGidRe.FindString(productGid)
	if domain == "" || id == "" {
		return ""
	}
	return fmt.Sprintf("https://%s/admin/products/%s", domain, id)
}

func userErrorsToError(action string, errs []dto.ShopifyUserError) error {
	if len(errs) == 0 {
		return nil
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := strings.TrimSpace(e.Message)
		if msg == "" {
			continue
		}
		if len(e.Field) > 0 {
			msg = fmt.Sprintf("%s: %s", strings.Join(e.Field, "."), msg)
		}
		parts = append(parts, msg)
	}
	if len(parts) == 0 {
		return fmt.Errorf("shopify %s failed with user errors", action)
	}
	return fmt.Errorf("shopify %s failed: %s", action, strings.Join(parts, "; "))
}

func formatGraphQLErrors(errs []dto.GraphQLError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := strings.TrimSpace(e.Message)
		if msg == "" {
			continue
		}
		if len(e.Path) > 0 {
			msg = fmt.Sprintf("%s (path: %v)", msg, e.Path)
		}
		parts = append(parts, msg)
	}
	if len(parts) == 0 {
		return "unknown graphql error"
	}
	return strings.Join(parts, "; ")
}
