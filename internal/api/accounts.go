package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	apperrors "github.com/nbcommunication/instagram-media-display/pkg/errors"
)

type addAccountRequest struct {
	Token string `json:"token"`
}

type accountResponse struct {
	Username    string `json:"username"`
	UserID      string `json:"user_id"`
	AccountType string `json:"account_type"`
	MediaCount  int    `json:"media_count"`
	TokenRenews string `json:"token_renews"`
}

func (s *Server) listAccounts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refresh := boolParam(r.URL.Query().Get("refresh"))

		all, err := s.Accounts.List(r.Context(), refresh)
		if err != nil {
			s.Logger.Error("Could not list accounts", "error", err)
			internalError(w, "failed to list accounts")
			return
		}

		out := make(map[string]accountResponse, len(all))
		for username, acc := range all {
			out[username] = accountResponse{
				Username:    acc.Username,
				UserID:      acc.UserID,
				AccountType: acc.AccountType,
				MediaCount:  acc.MediaCount,
				TokenRenews: acc.TokenRenews.Format("2006-01-02 15:04:05"),
			}
		}

		ok(w, map[string]any{"accounts": out, "total": len(out)})
	}
}

func (s *Server) addAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
			badRequest(w, "a long-lived access token is required")
			return
		}

		acc, err := s.Accounts.Add(r.Context(), req.Token)
		if err != nil {
			s.Logger.Error("Could not authorize account", "error", err)
			badRequest(w, "token was not accepted by the api")
			return
		}

		created(w, accountResponse{
			Username:    acc.Username,
			UserID:      acc.UserID,
			AccountType: acc.AccountType,
			MediaCount:  acc.MediaCount,
			TokenRenews: acc.TokenRenews.Format("2006-01-02 15:04:05"),
		})
	}
}

func (s *Server) removeAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		if err := s.Accounts.Remove(r.Context(), username); err != nil {
			if apperrors.IsNotAuthorized(err) {
				notFound(w, "account not found")
				return
			}
			s.Logger.Error("Could not remove account", "username", username, "error", err)
			internalError(w, "failed to remove account")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
