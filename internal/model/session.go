package model

// Session is the result of a successful registration or login.
type Session struct {
	User         UserSnapshot `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}
