package dto

type GraphQLResponse[T any] struct {
	Data   T              `json:"data,omitempty"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

type GraphQLError struct {
	Message    string         `json:"message,omitempty"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

type ShopifyUserError struct {
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message,omitempty"`
}

type ShopifyProduct struct {
	ID     string `json:"id,omitempty"`
	Handle string `json:"handle,omitempty"`
	Title  string `json:"title,omitempty"`
}

type Media struct {
	ID               string `json:"id,omitempty"`
	MediaContentType string `json:"mediaContentType,omitempty"`
	Status           string `json:"status,omitempty"`
}

type SelectedOption struct {
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

type ShopifyVariant struct {
	ID              string           `json:"id,omitempty"`
	SKU             string           `json:"sku,omitempty"`
	SelectedOptions []SelectedOption `json:"selectedOptions,omitempty"`
}
