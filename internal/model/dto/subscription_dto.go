package dto

type CreateSubscriptionRequest struct {
	PlanType string `json:"plan_type" binding:"required"`
}

// PlanItem 套餐展示信息（价格仅展示用，不接支付）
type PlanItem struct {
	PlanType      string  `json:"plan_type"`
	PlanName      string  `json:"plan_name"`
	Price         float64 `json:"price"`
	DurationYears int     `json:"duration_years"`
	PointGrant    int64   `json:"point_grant"`
}
