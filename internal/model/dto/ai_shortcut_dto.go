package dto

type AIShortcutRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Prompt      string `json:"prompt" binding:"required,max=1000"`
	Description string `json:"description" binding:"max=200"`
	SortOrder   int    `json:"sort_order"`
}

type ShortcutBatchDeleteRequest struct {
	IDs []int64 `json:"ids" binding:"required"`
}
