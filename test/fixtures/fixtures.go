// Package fixtures provides backend API payloads for tests.
package fixtures

import "fmt"

// XTrends is a GET /api/twitter response.
func XTrends() string {
	return `{
  "data": [
    {"name": "#AIMarketing", "post_count": 52000, "relevance": 0.73},
    {"name": "#SmallBiz", "post_count": 18000, "relevance": 0.5},
    {"name": "#FounderLife", "post_count": 9000, "relevance": 0.31}
  ]
}`
}

// TikTokTrends is a GET /api/tiktok response.
func TikTokTrends() string {
	return `{
  "data": {
    "collection": [
      {"title": "#BusinessTok", "publish_count": 98000, "video_views": 4000000},
      {"title": "#AIMarketing", "publish_count": 41000, "video_views": 2000000},
      {"title": "#SideHustle", "publish_count": 12000, "video_views": 1000000}
    ]
  }
}`
}

// YouTubeTrends is a GET /api/youtube response.
func YouTubeTrends() string {
	return `{
  "data": [
    {"title": "small business tips", "rating": 85},
    {"title": "ai tools review", "rating": 64.6}
  ]
}`
}

// EmptyTrends is a trend response with no entries.
func EmptyTrends() string {
	return `{"data": []}`
}

// Prompt is a POST /api/prompt response for platform.
func Prompt(id, platform, contentType string) string {
	return fmt.Sprintf(`{
  "id": %q,
  "data": {
    "title": "Trend roundup for %s",
    "description": "A short piece built on this week's top tags.",
    "contentType": %q,
    "relevance": 0.91,
    "hashtags": ["#AIMarketing", "#BusinessTok"]
  }
}`, id, platform, contentType)
}

// SavedContent is a GET /api/content response.
func SavedContent() string {
	return `{
  "data": [
    {"id": "s1", "title": "Hook ideas", "description": "Openers that work.", "platform": "twitter", "contentType": "article", "relevance": 88, "hashtags": ["#Hooks"]},
    {"id": "s2", "title": "Product demo", "description": "Show it in 30s.", "platform": "tiktok", "contentType": "video", "relevance": 0.8, "hashtags": []},
    {"id": "s3", "title": "Behind the scenes", "description": "Team at work.", "platform": "x", "contentType": "image", "relevance": 70}
  ]
}`
}

// Profile is a GET /api/user response.
func Profile() string {
	return `{
  "data": {
    "name": "John Doe",
    "email": "john@example.com",
    "businessName": "Acme Inc",
    "businessDescription": "We provide high-quality products for small businesses.",
    "industry": "retail",
    "businessType": "LLC",
    "contentGoals": ["brand-awareness", "lead-generation"],
    "emailNotifications": true,
    "pushNotifications": false,
    "contentDigest": "weekly",
    "trendAlerts": true,
    "dataSharing": false,
    "darkMode": false,
    "language": "english"
  }
}`
}
