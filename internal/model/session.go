package model

import "time"

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken           string    `json:"accessToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
}

// Session is returned by login: the identity and its first token pair.
type Session struct {
	User Profile `json:"user"`
	TokenPair
}
