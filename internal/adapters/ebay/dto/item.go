package dto

type Price struct {
	Value    string `json:"value,omitempty"`
	Currency string `json:"currency,omitempty"`
}

type Image struct {
	ImageURL string `json:"imageUrl,omitempty"`
}

type LocalizedAspect struct {
	Type  string `json:"type,omitempty"`
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

type Item struct {
	ItemID             string            `json:"itemId,omitempty"`
	LegacyItemID       string            `json:"legacyItemId,omitempty"`
	PrimaryItemGroupID string            `json:"primaryItemGroupId,omitempty"`
	Title              string            `json:"title,omitempty"`
	ShortDescription   string            `json:"shortDescription,omitempty"`
	Description        string            `json:"description,omitempty"`
	Brand              string            `json:"brand,omitempty"`
	MPN                string            `json:"mpn,omitempty"`
	EPID               string            `json:"epid,omitempty"`
	CategoryPath       string            `json:"categoryPath,omitempty"`
	Price              *Price            `json:"price,omitempty"`
	Image              *Image            `json:"image,omitempty"`
	AdditionalImages   []Image           `json:"additionalImages,omitempty"`
	LocalizedAspects   []LocalizedAspect `json:"localizedAspects,omitempty"`
}
