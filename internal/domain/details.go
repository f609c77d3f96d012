package domain

// InsightType classifies the momentum of a trend.
type InsightType string

const (
	InsightViral     InsightType = "viral"
	InsightGrowing   InsightType = "growing"
	InsightStable    InsightType = "stable"
	InsightDeclining InsightType = "declining"
)

// TrendDetails is the drill-down view of a single trend.
type TrendDetails struct {
	ID              string         `json:"id"`
	Tag             string         `json:"tag"`
	Platform        Platform       `json:"platform"`
	Volume          int            `json:"volume"`
	Growth          int            `json:"growth"`
	Relevance       int            `json:"relevance"`
	Description     string         `json:"description"`
	RelatedHashtags []string       `json:"relatedHashtags"`
	TopPosts        []TopPost      `json:"topPosts"`
	TrendHistory    []HistoryPoint `json:"trendHistory"`
	Insights        Insights       `json:"insights"`
}

// TopPost is a sample post carrying the trend.
type TopPost struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Author  string `json:"author"`
	Likes   int    `json:"likes"`
	Shares  int    `json:"shares"`
	URL     string `json:"url"`
}

// HistoryPoint is the volume of a trend on one day (YYYY-MM-DD).
type HistoryPoint struct {
	Date   string `json:"date"`
	Volume int    `json:"volume"`
}

// Insights summarizes how to act on a trend.
type Insights struct {
	Type              InsightType `json:"type"`
	PeakTime          string      `json:"peakTime"`
	AverageEngagement int         `json:"averageEngagement"`
	RecommendedAction string      `json:"recommendedAction"`
}
