package dto

type ArticleRequest struct {
	Title        string   `json:"title" binding:"required,max=200"`
	Content      string   `json:"content"`
	Summary      string   `json:"summary"`
	Category     string   `json:"category"`
	CollectionID string   `json:"collection_id"`
	Status       string   `json:"status"`
	Tags         []string `json:"tags"`
	Images       []string `json:"images"`
}

type ArticleQuery struct {
	Keyword      string `form:"keyword"`
	Category     string `form:"category"`
	CollectionID string `form:"collection_id"`
	Status       string `form:"status"`
	SortBy       string `form:"sort_by"`
	SortOrder    string `form:"sort_order"`
	Page         int    `form:"page"`
	Size         int    `form:"size"`
}

type ArticleItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content,omitempty"`
	Summary      string   `json:"summary"`
	Category     string   `json:"category"`
	CollectionID string   `json:"collection_id,omitempty"`
	Status       string   `json:"status"`
	Tags         []string `json:"tags"`
	Images       []string `json:"images"`
	WordCount    int      `json:"word_count"`
	ReadTime     int      `json:"read_time"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

type BatchDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

type BatchDeleteResult struct {
	DeletedCount int      `json:"deleted_count"`
	FailedIDs    []string `json:"failed_ids"`
}

type ArticleStats struct {
	TotalArticles     int64 `json:"total_articles"`
	PublishedArticles int64 `json:"published_articles"`
	DraftArticles     int64 `json:"draft_articles"`
	TotalWords        int64 `json:"total_words"`
}
