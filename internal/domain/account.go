package domain

import "time"

// Account is one authorized Instagram user: their long-lived access token
// plus the profile fields cached alongside it.
type Account struct {
	Username    string
	Token       string
	UserID      string
	AccountType string
	MediaCount  int
	TokenRenews time.Time
	Created     time.Time
	Modified    time.Time
}
