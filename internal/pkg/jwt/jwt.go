package jwt

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(userID string, role user.Role) (token string, expiresAt int64, err error)
	ParseAccessToken(tokenString string) (user.Claims, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(userID string, role user.Role) (token string, expiresAt int64, err error) {
	if !role.IsValid() {
		return "", 0, user.ErrInvalidRole
	}

	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, fmt.Errorf("invalid access token expiration: %w", err)
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"role":    string(role),
		"type":    "access",
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// ParseAccessToken verifies the signature and expiry and extracts the identity claims.
func (j *JWTService) ParseAccessToken(tokenString string) (user.Claims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return user.Claims{}, err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "access" {
		return user.Claims{}, user.ErrInvalidToken
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return user.Claims{}, user.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return user.Claims{}, user.ErrInvalidToken
	}

	roleVal, _ := token.Get("role")
	roleStr, _ := roleVal.(string)
	role := user.Role(roleStr)
	if !role.IsValid() {
		return user.Claims{}, user.ErrInvalidRole
	}

	return user.Claims{UserID: userID, Role: role}, nil
}
