package dto

type SpendRequest struct {
	Points      int64  `json:"points" binding:"required"`
	Service     string `json:"service"`
	Description string `json:"description"`
}

type SpendResult struct {
	NewBalance  int64 `json:"new_balance"`
	PointsSpent int64 `json:"points_spent"`
}

type CheckinResult struct {
	PointsEarned   int64 `json:"points_earned"`
	NewBalance     int64 `json:"new_balance"`
	ContinuousDays int   `json:"continuous_days"`
}

type BalanceInfo struct {
	Balance     int64 `json:"balance"`
	TotalEarned int64 `json:"total_earned"`
	TotalSpent  int64 `json:"total_spent"`
	Level       int   `json:"level"`
}
