package model

// ListingIdentifiers holds whatever identifiers could be recovered for a
// marketplace listing. All fields are optional; Empty reports whether none
// were found.
type ListingIdentifiers struct {
	ItemID       string
	ItemGroupID  string
	LegacyItemID string
}

func (ids ListingIdentifiers) Empty() bool {
	return ids.ItemID == "" && ids.ItemGroupID == "" && ids.LegacyItemID == ""
}

// Aspect is a marketplace attribute name/value pair; values may repeat across
// group members.
type Aspect struct {
	Name   string
	Values []string
}

type Listing struct {
	ItemID       string
	LegacyItemID string
	ItemGroupID  string
	Title        string
	Description  string
	Brand        string
	MPN          string
	EPID         string
	CategoryPath string
	Price        string
	Currency     string
	ImageURL     string
	ExtraImages  []string
	Aspects      []Aspect
}

type ListingGroup struct {
	GroupID     string
	Title       string
	Description string
	Items       []Listing
}

// ResolvedListing is the resolver's output: exactly one of Item or Group is
// meaningful, selected by IsGroup.
type ResolvedListing struct {
	IsGroup bool
	Item    Listing
	Group   ListingGroup
}
