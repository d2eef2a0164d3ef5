package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumericTail(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
		ok   bool
	}{
		{"plain itm url", "https://www.ebay.com/itm/262742221410", "262742221410", true},
		{"slugged tail", "https://www.ebay.com/itm/Apple-iPhone-13-Pro-262742221410", "262742221410", true},
		{"trailing slash", "https://www.ebay.com/itm/262742221410/", "262742221410", true},
		{"query ignored", "https://www.ebay.com/itm/262742221410?hash=item3d2c4a1e22", "262742221410", true},
		{"itm segment fallback", "https://www.ebay.com/itm/12345678/extra", "12345678", true},
		{"itm in query only", "https://www.ebay.com/sch/results?ref=/itm/12345678", "", false},
		{"no identifier", "https://www.ebay.com/usr/someseller", "", false},
		{"digits too short at tail", "https://www.ebay.com/p/1234", "", false},
		{"not a url", "://broken", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumericTail(tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGroupIDFromError(t *testing.T) {
	id, ok := ParseGroupIDFromError(`the item id is part of a group, use item_group_id=334455 instead`)
	require.True(t, ok)
	assert.Equal(t, "334455", id)

	_, ok = ParseGroupIDFromError("plain failure, no hint")
	assert.False(t, ok)

	// below the six digit minimum
	_, ok = ParseGroupIDFromError("item_group_id=12345")
	assert.False(t, ok)
}

func TestIdentifiersFromHTML(t *testing.T) {
	html := `<script>var ctx = {"itemId":"v1|262742221410|0",'itemGroupId':'334455667',
		"legacyItemId":"262742221410"};</script>`

	ids, ok := IdentifiersFromHTML(html)
	require.True(t, ok)
	assert.Equal(t, "v1|262742221410|0", ids.ItemID)
	assert.Equal(t, "334455667", ids.ItemGroupID)
	assert.Equal(t, "262742221410", ids.LegacyItemID)
}

func TestIdentifiersFromHTML_PartialAndEmpty(t *testing.T) {
	ids, ok := IdentifiersFromHTML(`{"legacyItemId": "262742221410"}`)
	require.True(t, ok)
	assert.Equal(t, "262742221410", ids.LegacyItemID)
	assert.Empty(t, ids.ItemID)

	_, ok = IdentifiersFromHTML("<html><body>nothing here</body></html>")
	assert.False(t, ok)
}
