package reconcile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-importer/internal/domain/model"
)

func singleListing() model.Listing {
	return model.Listing{
		ItemID:       "v1|262742221410|0",
		LegacyItemID: "262742221410",
		Title:        "Cordless Drill",
		Description:  "18V cordless drill",
		Brand:        "Makita",
		MPN:          "XFD131",
		CategoryPath: "Home & Garden/Tools/Power Tools",
		Price:        "129.9",
		Currency:     "USD",
		ImageURL:     "https://img.example/1.jpg",
		ExtraImages:  []string{"https://img.example/2.jpg", "https://img.example/1.jpg"},
	}
}

func TestNormalize_SingleListing(t *testing.T) {
	product, err := Normalize(model.ResolvedListing{Item: singleListing()})
	require.NoError(t, err)

	assert.Equal(t, "Cordless Drill", product.Title)
	assert.Equal(t, "Makita", product.Vendor)
	assert.Empty(t, product.OptionsOrder)
	assert.Equal(t, []string{"https://img.example/1.jpg", "https://img.example/2.jpg"}, product.ImageURLs)
	assert.Equal(t, []string{"Home & Garden", "Tools", "Power Tools", "Makita"}, product.Tags)

	require.Len(t, product.Variants, 1)
	v := product.Variants[0]
	assert.Equal(t, "XFD131", v.SKU)
	assert.Equal(t, "129.90", v.Price)
	assert.Equal(t, "USD", v.Currency)
	assert.Empty(t, v.Options)
}

func TestNormalize_SKUPriority(t *testing.T) {
	item := singleListing()

	item.MPN = ""
	item.EPID = "epid-1"
	product, err := Normalize(model.ResolvedListing{Item: item})
	require.NoError(t, err)
	assert.Equal(t, "epid-1", product.Variants[0].SKU)

	item.EPID = ""
	product, err = Normalize(model.ResolvedListing{Item: item})
	require.NoError(t, err)
	assert.Equal(t, "262742221410", product.Variants[0].SKU)

	item.LegacyItemID = ""
	product, err = Normalize(model.ResolvedListing{Item: item})
	require.NoError(t, err)
	assert.Equal(t, "v1|262742221410|0", product.Variants[0].SKU)

	item.ItemID = ""
	product, err = Normalize(model.ResolvedListing{Item: item})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(product.Variants[0].SKU, "IMPORT-"))
}

func TestNormalize_CurrencyDefaultsToUSD(t *testing.T) {
	item := singleListing()
	item.Currency = ""
	product, err := Normalize(model.ResolvedListing{Item: item})
	require.NoError(t, err)
	assert.Equal(t, "USD", product.Variants[0].Currency)
}

func TestNormalize_GroupWithoutItems(t *testing.T) {
	_, err := Normalize(model.ResolvedListing{IsGroup: true, Group: model.ListingGroup{GroupID: "1"}})
	assert.ErrorIs(t, err, ErrMissingItems)
}

func groupMember(itemID, color, size string) model.Listing {
	aspects := []model.Aspect{
		{Name: "Brand", Values: []string{"Makita"}},
	}
	if color != "" {
		aspects = append(aspects, model.Aspect{Name: "Color", Values: []string{color}})
	}
	if size != "" {
		aspects = append(aspects, model.Aspect{Name: "Size", Values: []string{size}})
	}
	return model.Listing{
		ItemID:   itemID,
		Title:    "Shirt " + itemID,
		Price:    "19.99",
		Currency: "USD",
		ImageURL: "https://img.example/" + itemID + ".jpg",
		Aspects:  aspects,
	}
}

func TestNormalize_GroupAspectCardinality(t *testing.T) {
	group := model.ListingGroup{
		GroupID: "g1",
		Title:   "Shirt",
		Items: []model.Listing{
			groupMember("1", "Red", ""),
			groupMember("2", "Blue", ""),
			groupMember("3", "Blue", ""),
		},
	}

	product, err := Normalize(model.ResolvedListing{IsGroup: true, Group: group})
	require.NoError(t, err)
	assert.Equal(t, []string{"Color"}, product.OptionsOrder)
	require.Len(t, product.Variants, 3)
	assert.Equal(t, "Red", product.Variants[0].Options["Color"])
	assert.Equal(t, "Blue", product.Variants[1].Options["Color"])
}

func TestNormalize_DenyListedAspectsNeverBecomeAxes(t *testing.T) {
	group := model.ListingGroup{
		GroupID: "g1",
		Title:   "Drill",
		Items: []model.Listing{
			{ItemID: "1", Price: "10", Aspects: []model.Aspect{{Name: "Brand", Values: []string{"Makita"}}}},
			{ItemID: "2", Price: "10", Aspects: []model.Aspect{{Name: "Brand", Values: []string{"Bosch"}}}},
		},
	}

	product, err := Normalize(model.ResolvedListing{IsGroup: true, Group: group})
	require.NoError(t, err)
	assert.Empty(t, product.OptionsOrder)
	for _, v := range product.Variants {
		assert.Empty(t, v.Options)
	}
}

func TestNormalize_AxisRankingAndTruncation(t *testing.T) {
	// four varying aspects; Size has 3 values, the rest 2, and Material was
	// seen before Style
	items := []model.Listing{
		{ItemID: "1", Price: "5", Aspects: []model.Aspect{
			{Name: "Material", Values: []string{"Cotton"}},
			{Name: "Size", Values: []string{"S"}},
			{Name: "Style", Values: []string{"Crew"}},
			{Name: "Fit", Values: []string{"Slim"}},
		}},
		{ItemID: "2", Price: "5", Aspects: []model.Aspect{
			{Name: "Material", Values: []string{"Linen"}},
			{Name: "Size", Values: []string{"M"}},
			{Name: "Style", Values: []string{"V-neck"}},
			{Name: "Fit", Values: []string{"Regular"}},
		}},
		{ItemID: "3", Price: "5", Aspects: []model.Aspect{
			{Name: "Size", Values: []string{"L"}},
		}},
	}

	product, err := Normalize(model.ResolvedListing{IsGroup: true, Group: model.ListingGroup{GroupID: "g", Title: "T", Items: items}})
	require.NoError(t, err)
	require.Len(t, product.OptionsOrder, 3)
	assert.Equal(t, "Size", product.OptionsOrder[0])
	assert.Equal(t, []string{"Size", "Material", "Style"}, product.OptionsOrder)

	// member 3 has no Material aspect: the axis is omitted, not defaulted
	_, hasMaterial := product.Variants[2].Options["Material"]
	assert.False(t, hasMaterial)
}

func TestNormalize_OverlongAspectNamesExcluded(t *testing.T) {
	longName := strings.Repeat("x", 31)
	items := []model.Listing{
		{ItemID: "1", Price: "5", Aspects: []model.Aspect{{Name: longName, Values: []string{"a"}}}},
		{ItemID: "2", Price: "5", Aspects: []model.Aspect{{Name: longName, Values: []string{"b"}}}},
	}
	product, err := Normalize(model.ResolvedListing{IsGroup: true, Group: model.ListingGroup{GroupID: "g", Title: "T", Items: items}})
	require.NoError(t, err)
	assert.Empty(t, product.OptionsOrder)
}

func TestNormalize_GroupPriceFallsBackToFirstMember(t *testing.T) {
	items := []model.Listing{
		{ItemID: "1", Price: "12.5", Currency: "EUR"},
		{ItemID: "2"},
	}
	product, err := Normalize(model.ResolvedListing{IsGroup: true, Group: model.ListingGroup{GroupID: "g", Title: "T", Items: items}})
	require.NoError(t, err)
	require.Len(t, product.Variants, 2)
	assert.Equal(t, "12.50", product.Variants[1].Price)
	assert.Equal(t, "EUR", product.Variants[1].Currency)
}

func TestNormalize_GroupImageDeduplication(t *testing.T) {
	items := []model.Listing{
		{ItemID: "1", Price: "5", ImageURL: "https://img.example/a.jpg"},
		{ItemID: "2", Price: "5", ImageURL: "https://img.example/a.jpg", ExtraImages: []string{"https://img.example/b.jpg"}},
	}
	product, err := Normalize(model.ResolvedListing{IsGroup: true, Group: model.ListingGroup{GroupID: "g", Title: "T", Items: items}})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example/a.jpg", "https://img.example/b.jpg"}, product.ImageURLs)
}
