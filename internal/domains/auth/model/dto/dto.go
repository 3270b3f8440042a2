package dto

import (
	"trekking/internal/domains/auth/model"
	"trekking/shared/constant"
)

// CreateSessionRequest hands over a token the booking API issued at login.
type CreateSessionRequest struct {
	AccessToken string `json:"access_token" validate:"required,max=4096"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

func (r *SessionResponse) FromModel(sessionID string, creds model.Credentials) {
	r.SessionID = sessionID
	r.UserID = creds.UserID
	r.Email = creds.Email

	if !creds.ExpiresAt.IsZero() {
		r.ExpiresAt = creds.ExpiresAt.UTC().Format(constant.DateFormat)
	}
}
