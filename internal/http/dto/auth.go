package dto

import "time"

type SignUpRequest struct {
	Name          string `json:"name" binding:"max=255"`
	Email         string `json:"email" binding:"omitempty,email,max=255"`
	Password      string `json:"password" binding:"max=72"`
	WalletAddress string `json:"wallet_address"`
	Signature     string `json:"signature"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type WalletNonceRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
}

type WalletNonceResponse struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

type WalletVerifyRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
	Signature     string `json:"signature" binding:"required"`
}

type ExchangeRequest struct {
	Code        string  `json:"code" binding:"required"`
	InviteToken *string `json:"invite_token,omitempty"`
}

type AuthURLResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	State            string `json:"state"`
}

// SessionResponse is returned by every endpoint that signs a user in.
type SessionResponse struct {
	User        *UserResponse `json:"user"`
	SessionID   int64         `json:"session_id,string"`
	ExpiresAt   time.Time     `json:"expires_at"`
	WorkspaceID *int64        `json:"workspace_id,omitempty,string"`
}
