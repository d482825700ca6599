package dto

type CollectionRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	Color       string `json:"color" binding:"max=9"`
	Icon        string `json:"icon" binding:"max=50"`
	SortOrder   int    `json:"sort_order"`
	IsEnabled   *bool  `json:"is_enabled"`
}

type CollectionItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Color        string `json:"color"`
	Icon         string `json:"icon"`
	SortOrder    int    `json:"sort_order"`
	IsEnabled    bool   `json:"is_enabled"`
	ArticleCount int64  `json:"article_count"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
