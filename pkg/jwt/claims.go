package jwt

import "github.com/golang-jwt/jwt/v5"

// ClubClaims are the claims carried by crewbot session tokens. Subject
// holds the athlete ID.
type ClubClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
	Role string `json:"role"`
}

type Role string

const (
	RoleViewer  Role = "viewer"
	RoleAthlete Role = "athlete"
	RoleCoach   Role = "coach"
)
