package mediaimpl

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/nbcommunication/instagram-media-display/internal/domain"
	"github.com/nbcommunication/instagram-media-display/internal/fetcher"
	"github.com/nbcommunication/instagram-media-display/internal/graph"
	apperrors "github.com/nbcommunication/instagram-media-display/pkg/errors"
)

// GetProfile fetches the profile summary of a stored account and writes
// the reported media count back to the account record. Fails softly.
func (m *MediaImpl) GetProfile(ctx context.Context, username string) *domain.Profile {
	acc, err := m.Auth.Resolve(ctx, username)
	if err != nil {
		m.Logger.Error("Could not resolve account for profile", "username", username, "error", err)
		return nil
	}

	profile, err := m.fetchProfile(ctx, acc.Token, acc.Username)
	if err != nil {
		m.Logger.Error("Could not fetch profile", "username", acc.Username, "error", err)
		return nil
	}

	if profile.MediaCount != acc.MediaCount {
		if err := m.Accounts.UpdateMediaCount(ctx, acc.Username, profile.MediaCount); err != nil {
			m.Logger.Warn("Could not update cached media count", "username", acc.Username, "error", err)
		}
	}

	return profile
}

// GetProfileWithToken fetches a profile with an explicit token. The
// account store is not consulted or updated.
func (m *MediaImpl) GetProfileWithToken(ctx context.Context, token string) (*domain.Profile, error) {
	return m.fetchProfile(ctx, token, "")
}

func (m *MediaImpl) fetchProfile(ctx context.Context, token, username string) (*domain.Profile, error) {
	params := url.Values{}
	params.Set("fields", strings.Join(graph.ProfileFields, ","))
	params.Set("access_token", token)

	body, err := m.Fetcher.Fetch(ctx, "me", params, fetcher.WithUser(username))
	if err != nil {
		return nil, err
	}

	var raw graph.Profile
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.Join(apperrors.ErrRemoteRequest, err)
	}
	if raw.Username == "" {
		return nil, apperrors.ErrNoData
	}

	return &domain.Profile{
		UserID:            raw.UserID,
		Username:          raw.Username,
		AccountType:       raw.AccountType,
		MediaCount:        raw.MediaCount,
		ProfilePictureURL: raw.ProfilePictureURL,
	}, nil
}
