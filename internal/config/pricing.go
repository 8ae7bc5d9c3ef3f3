package config

// Pricing for single demo dishes and hosting plans. Credit packs live in the
// database (seeded at migration) so they can be toggled without a deploy.
const (
	DemoDishPriceUSD = 99.0
	DemoDishCurrency = "USD"

	// Photo requirements for one dish order.
	MinOrderPhotos = 8
	MaxOrderPhotos = 20
)

type HostingPlan struct {
	Name          string  `json:"name"`
	PriceUSD      float64 `json:"price_usd"`
	PaddlePriceID string  `json:"paddle_price_id"`
}

var HostingPlans = map[string]HostingPlan{
	"BASIC": {Name: "Basic Hosting", PriceUSD: 19.0, PaddlePriceID: "pri_hosting_basic"},
	"PRO":   {Name: "Pro Hosting", PriceUSD: 49.0, PaddlePriceID: "pri_hosting_pro"},
}
