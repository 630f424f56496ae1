package entity

import "github.com/golang-jwt/jwt/v5"

// Claims represents the JWT claims carried by a player access token.
type Claims struct {
	PlayerKey string `json:"pid"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}
