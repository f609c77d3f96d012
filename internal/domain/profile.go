package domain

// Profile is the user's business profile as stored by the backend.
type Profile struct {
	Name                string   `json:"name" validate:"required,max=120"`
	Email               string   `json:"email" validate:"required,email"`
	BusinessName        string   `json:"businessName" validate:"max=120"`
	BusinessDescription string   `json:"businessDescription" validate:"max=2000"`
	Industry            string   `json:"industry" validate:"required"`
	BusinessType        string   `json:"businessType" validate:"required"`
	ContentGoals        []string `json:"contentGoals" validate:"dive,required"`
	EmailNotifications  bool     `json:"emailNotifications"`
	PushNotifications   bool     `json:"pushNotifications"`
	ContentDigest       string   `json:"contentDigest" validate:"oneof=daily weekly monthly never"`
	TrendAlerts         bool     `json:"trendAlerts"`
	DataSharing         bool     `json:"dataSharing"`
	DarkMode            bool     `json:"darkMode"`
	Language            string   `json:"language" validate:"max=40"`
}
