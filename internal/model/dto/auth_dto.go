package dto

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=64"`
	Nickname string `json:"nickname"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user_info"`
}

// MembershipInfo 会员状态摘要，登录和个人信息接口返回
type MembershipInfo struct {
	IsMember      bool   `json:"is_member"`
	PlanType      string `json:"plan_type,omitempty"`
	PlanName      string `json:"plan_name,omitempty"`
	EndDate       string `json:"end_date,omitempty"`
	DaysRemaining int    `json:"days_remaining"`
}

// PointInfo 积分摘要
type PointInfo struct {
	Balance     int64 `json:"balance"`
	TotalEarned int64 `json:"total_earned"`
	TotalSpent  int64 `json:"total_spent"`
	Level       int   `json:"level"`
}

type UserInfo struct {
	ID         int64           `json:"id"`
	Username   string          `json:"username"`
	Email      string          `json:"email"`
	Nickname   string          `json:"nickname"`
	Avatar     string          `json:"avatar"`
	Status     int             `json:"status"`
	Membership *MembershipInfo `json:"membership"`
	Points     *PointInfo      `json:"points"`
}
