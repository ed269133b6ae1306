package domain

// Dashboard is the aggregated view of a store's activity. TotalEarnings is
// in whole currency units, rounded once from an exact minor-unit sum.
type Dashboard struct {
	TotalOrders   int              `json:"total_orders"`
	TotalEarnings int64            `json:"total_earnings"`
	TotalProducts int              `json:"total_products"`
	Ratings       []RatingWithRefs `json:"ratings"`
}
