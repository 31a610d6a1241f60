// Package graph holds the wire types of the Instagram Graph API endpoints
// this application consumes.
package graph

import (
	"fmt"
	"strings"
)

// Media types returned by the API.
const (
	MediaTypeImage         = "IMAGE"
	MediaTypeVideo         = "VIDEO"
	MediaTypeCarouselAlbum = "CAROUSEL_ALBUM"
)

// MediaFields is the field set requested for media endpoints. Caption is
// not returnable for media inside albums and is stripped for child requests.
var MediaFields = []string{
	"caption",
	"id",
	"media_type",
	"media_url",
	"permalink",
	"thumbnail_url",
	"timestamp",
	"username",
}

// ProfileFields is the field set requested from the me endpoint.
var ProfileFields = []string{
	"user_id",
	"username",
	"account_type",
	"media_count",
	"profile_picture_url",
}

// ValidMediaType reports whether t is a media type the API can return.
func ValidMediaType(t string) bool {
	switch t {
	case MediaTypeImage, MediaTypeVideo, MediaTypeCarouselAlbum:
		return true
	}
	return false
}

// Media is one raw media record as received from the API.
type Media struct {
	ID           string `json:"id"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Permalink    string `json:"permalink,omitempty"`
	Caption      string `json:"caption,omitempty"`
	Timestamp    string `json:"timestamp,omitempty"`
	Username     string `json:"username,omitempty"`

	// Tags is derived from the caption, not part of the wire format.
	Tags []string `json:"-"`
}

// Paging is the cursor block of a paginated response.
type Paging struct {
	Cursors struct {
		Before string `json:"before"`
		After  string `json:"after"`
	} `json:"cursors"`
	Next string `json:"next,omitempty"`
}

// MediaResponse is a page of media.
type MediaResponse struct {
	Data   []Media `json:"data"`
	Paging *Paging `json:"paging,omitempty"`
}

// HasMedia reports whether the page carries any items.
func (r *MediaResponse) HasMedia() bool {
	return r != nil && len(r.Data) > 0
}

// Next returns the absolute URL of the next page, or "" on the last page.
func (r *MediaResponse) Next() string {
	if r == nil || r.Paging == nil {
		return ""
	}
	return r.Paging.Next
}

// APIError is the error object the API embeds in a response body.
type APIError struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode"`
	FBTraceID    string `json:"fbtrace_id"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("instagram api error: %s (type: %s, code: %d)", e.Message, e.Type, e.Code)
}

// IsOAuth reports whether this is an authorisation error.
func (e *APIError) IsOAuth() bool {
	return strings.EqualFold(e.Type, "OAuthException")
}

// ErrorResponse is used to probe a response body for an error object.
type ErrorResponse struct {
	Error *APIError `json:"error,omitempty"`
}

// Profile is the raw me endpoint response.
type Profile struct {
	UserID            string `json:"user_id"`
	Username          string `json:"username"`
	AccountType       string `json:"account_type"`
	MediaCount        int    `json:"media_count"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

// RefreshResponse is the refresh_access_token endpoint response.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}
