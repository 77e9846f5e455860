package dto

// AuthURLResponse is returned by GET /auth/google/auth-url. The state value
// is generated by the backend and must be echoed back on the callback
// exchange; the console persists it as the OAuth nonce.
type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

// ExchangeResponse is returned by POST /auth/google/callback. Token may be
// empty on a 2xx response when the backend declined to issue a credential.
type ExchangeResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// ExchangeRequest is the body for POST /auth/google/callback.
type ExchangeRequest struct {
	Code        string `json:"code"`
	State       string `json:"state"`
	RedirectURI string `json:"redirect_uri"`
}

// Identity is the authenticated admin profile from GET /admin/me.
type Identity struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}
