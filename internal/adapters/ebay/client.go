package ebay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"listing-importer/internal/adapters/ebay/dto"
	"listing-importer/internal/config"
	"listing-importer/internal/domain/model"
)

type ClientService interface {
	FetchByLegacyID(ctx context.Context, legacyID string) (model.Listing, error)
	FetchItem(ctx context.Context, itemID string) (model.Listing, error)
	FetchGroupDetail(ctx context.Context, groupID string) (model.ListingGroup, error)
	FetchItemsByGroup(ctx context.Context, groupID string) (model.ListingGroup, error)
	FetchListingPage(ctx context.Context, pageURL string) (string, error)
}

type Client struct {
	config     config.EbayConfig
	httpClient *http.Client
	tokens     oauth2.TokenSource
}

func NewClient(cfg config.EbayConfig, httpClient *http.Client) ClientService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	creds := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenUrl,
		Scopes:       []string{cfg.Scope},
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	// TokenSource caches the app token and refreshes it shortly before expiry.
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)

	return &Client{
		config:     cfg,
		httpClient: httpClient,
		tokens:     creds.TokenSource(tokenCtx),
	}
}

func (c *Client) FetchByLegacyID(ctx context.Context, legacyID string) (model.Listing, error) {
	query := url.Values{}
	query.Set("legacy_item_id", legacyID)

	var item dto.Item
	err := c.browseRequest(ctx, "/buy/browse/v1/item/get_item_by_legacy_id", query, &item)
	if err != nil {
		return model.Listing{}, err
	}
	return mapItem(item), nil
}

func (c *Client) FetchItem(ctx context.Context, itemID string) (model.Listing, error) {
	var item dto.Item
	err := c.browseRequest(ctx, "/buy/browse/v1/item/"+url.PathEscape(itemID), nil, &item)
	if err != nil {
		return model.Listing{}, err
	}
	return mapItem(item), nil
}

func (c *Client) FetchGroupDetail(ctx context.Context, groupID string) (model.ListingGroup, error) {
	var group dto.Group
	err := c.browseRequest(ctx, "/buy/browse/v1/item_group/"+url.PathEscape(groupID), nil, &group)
	if err != nil {
		return model.ListingGroup{}, err
	}
	return mapGroup(groupID, group)
}

func (c *Client) FetchItemsByGroup(ctx context.Context, groupID string) (model.ListingGroup, error) {
	query := url.Values{}
	query.Set("item_group_id", groupID)

	var group dto.Group
	err := c.browseRequest(ctx, "/buy/browse/v1/item/get_items_by_item_group", query, &group)
	if err != nil {
		return model.ListingGroup{}, err
	}
	return mapGroup(groupID, group)
}

func (c *Client) browseRequest(ctx context.Context, path string, query url.Values, out any) error {
	base := strings.TrimRight(strings.TrimSpace(c.config.BaseUrl), "/")
	if base == "" {
		return errors.New("ebay base url is empty")
	}
	endpoint := base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("ebay token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("X-EBAY-C-MARKETPLACE-ID", c.config.Marketplace)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp.StatusCode, resp.Status, respBody)
	}

	return json.Unmarshal(respBody, out)
}

func mapItem(item dto.Item) model.Listing {
	description := strings.TrimSpace(item.Description)
	if description == "" {
		description = strings.TrimSpace(item.ShortDescription)
	}

	listing := model.Listing{
		ItemID:       item.ItemID,
		LegacyItemID: item.LegacyItemID,
		ItemGroupID:  item.PrimaryItemGroupID,
		Title:        item.Title,
		Description:  description,
		Brand:        item.Brand,
		MPN:          item.MPN,
		EPID:         item.EPID,
		CategoryPath: item.CategoryPath,
	}
	if item.Price != nil {
		listing.Price = item.Price.Value
		listing.Currency = item.Price.Currency
	}
	if item.Image != nil {
		listing.ImageURL = item.Image.ImageURL
	}
	for _, img := range item.AdditionalImages {
		if img.ImageURL != "" {
			listing.ExtraImages = append(listing.ExtraImages, img.ImageURL)
		}
	}
	for _, aspect := range item.LocalizedAspects {
		if aspect.Name == "" {
			continue
		}
		listing.Aspects = append(listing.Aspects, model.Aspect{
			Name:   aspect.Name,
			Values: []string{aspect.Value},
		})
	}
	return listing
}

func mapGroup(groupID string, group dto.Group) (model.ListingGroup, error) {
	out := model.ListingGroup{
		GroupID:     firstNonEmpty(group.ItemGroupID, groupID),
		Title:       group.Title,
		Description: group.Description,
	}
	for _, member := range group.Members() {
		out.Items = append(out.Items, mapItem(member))
	}
	// Group-level title/description are often absent; the first member stands in.
	if len(out.Items) > 0 {
		if strings.TrimSpace(out.Title) == "" {
			out.Title = out.Items[0].Title
		}
		if strings.TrimSpace(out.Description) == "" {
			out.Description = out.Items[0].Description
		}
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
