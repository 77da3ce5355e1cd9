package controllers

import (
	"fmt"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// IssueToken Sign an HS256 bearer token for subject
func IssueToken(secret string, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.StandardClaims{
		Subject:   subject,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// AuthMiddleware Require a valid bearer token signed with secret
func AuthMiddleware(secret string) gin.HandlerFunc {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if header == "" || tokenString == header {
			c.Error(fmt.Errorf("%w: missing bearer token", ErrUnauthorized))
			c.Abort()
			return
		}

		claims := &jwt.StandardClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc)
		if err != nil || !token.Valid {
			c.Error(fmt.Errorf("%w: invalid token", ErrUnauthorized))
			c.Abort()
			return
		}
		c.Set("subject", claims.Subject)
		c.Next()
	}
}
