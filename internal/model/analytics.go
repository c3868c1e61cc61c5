package model

type AnalyticsOverview struct {
	Range            string        `json:"range"`
	TotalPosts       int64         `json:"total_posts"`
	TotalViews       int64         `json:"total_views"`
	TotalComments    int64         `json:"total_comments"`
	TotalSubscribers int64         `json:"total_subscribers"`
	Views            []SeriesPoint `json:"views"`
	Comments         []SeriesPoint `json:"comments"`
	TopPosts         []PostStat    `json:"top_posts"`
}

// SeriesPoint 折线图的一个点
type SeriesPoint struct {
	Date  string `json:"date"`
	Value int64  `json:"value"`
}

type PostStat struct {
	PostID int64  `json:"post_id"`
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	Views  int64  `json:"views"`
}
