package testfixtures

import (
	"github.com/golang-jwt/jwt/v5"
)

const tokenSecret = "fixture-secret"

// Token builds a signed JWT carrying the claims the backend issues.
func Token(sub any, email, name string) string {
	claims := jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"name":  name,
		"exp":   ReferenceTime().AddDate(100, 0, 0).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(tokenSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

// TokenEmail reads the email claim without verifying the signature.
func TokenEmail(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}
