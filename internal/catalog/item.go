package catalog

// Item is one sourced marketplace listing as supplied by the search layer.
// The composition engine treats it as read-only and trusts only Identity
// to survive refreshes of the same listing.
type Item struct {
	Identity     string `json:"url"`
	Title        string `json:"title"`
	PriceText    string `json:"price_text"`
	Availability string `json:"availability"`
	Source       string `json:"source"`
	ImageURL     string `json:"image_url,omitempty"`
	SKU          string `json:"sku,omitempty"`
}
