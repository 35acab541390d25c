package model

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"

	// Spring Security prefixes authorities with "ROLE_"; older tokens
	// carry that form and it must keep working.
	RoleAdminLegacy = "ROLE_ADMIN"
)

// Session is the client-held authentication state: the token pair plus the
// identity it was issued for. A zero Session means "logged out".
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Username     string `json:"username"`
	Role         string `json:"role"`
}

func (s Session) IsAuthenticated() bool {
	return s.AccessToken != ""
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin || s.Role == RoleAdminLegacy
}
