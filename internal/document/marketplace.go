package document

// MarketplaceItem is a purchasable catalogue entry. The catalogue is
// seeded at first boot and read-only from the store's perspective.
type MarketplaceItem struct {
	ID       string `json:"id"`
	SellerID string `json:"seller_id,omitempty"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
}

// ItemByID returns the marketplace item with the given id, or nil.
func (d *Document) ItemByID(id string) *MarketplaceItem {
	for _, m := range d.Marketplace {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func seedMarketplace() []*MarketplaceItem {
	return []*MarketplaceItem{
		{ID: "item-builder-cap", Name: "Builder Cap", Price: 150},
		{ID: "item-neon-trail", Name: "Neon Trail", Price: 320},
		{ID: "item-golden-pick", Name: "Golden Pickaxe", Price: 500},
		{ID: "item-cloud-mount", Name: "Cloud Mount", Price: 750},
	}
}
