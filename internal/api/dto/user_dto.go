package dto

// CredentialsRequest is the payload for register and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// MessageResponse carries a human readable status.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// ProtectedResponse echoes the authenticated subject.
type ProtectedResponse struct {
	Message string `json:"message"`
	User    string `json:"user"`
}
