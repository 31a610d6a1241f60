package domain

// Profile is a user's profile summary.
type Profile struct {
	UserID            string `json:"user_id"`
	Username          string `json:"username"`
	AccountType       string `json:"account_type"`
	MediaCount        int    `json:"media_count"`
	ProfilePictureURL string `json:"profile_picture_url"`
}
