package dto

type Group struct {
	ItemGroupID string `json:"itemGroupId,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// The two group endpoints and older API revisions disagree on the name of
	// the member array; at most one of these is populated.
	Items         []Item `json:"items,omitempty"`
	ItemSummaries []Item `json:"itemSummaries,omitempty"`
	GroupItems    []Item `json:"groupItems,omitempty"`
}

// Members returns whichever member array the response populated.
func (g Group) Members() []Item {
	if len(g.Items) > 0 {
		return g.Items
	}
	if len(g.ItemSummaries) > 0 {
		return g.ItemSummaries
	}
	return g.GroupItems
}
