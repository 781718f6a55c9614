// Package service provides functionality for handling authentication,
// including generating and parsing JWT tokens, and orchestrating
// content-credibility analyses.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/pranav06082004/Authen-X/internal/storage"
)

// Claims represents the claims that are included in the JWT token.
// It embeds the RegisteredClaims from the JWT package and includes
// custom UserID and Role fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// TokenExp defines the expiration time of the JWT token.
const TokenExp = time.Hour * 24 * 30

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// Auth resolves bearer tokens to users and issues tokens for the register
// and login flows.
type Auth struct {
	s      Storage
	secret []byte
}

func NewAuth(s Storage, secret string) *Auth {
	return &Auth{
		s:      s,
		secret: []byte(secret),
	}
}

// Register creates an account with a bcrypt-hashed password and returns a
// signed token for it.
func (a *Auth) Register(ctx context.Context, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user, err := a.s.CreateUser(ctx, storage.UserRecord{
		Email:        email,
		PasswordHash: string(hash),
		Role:         storage.RoleUser,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	return a.buildJWTString(user.ID, user.Role)
}

// Login verifies the password against the stored hash and returns a signed
// token. Unknown emails and wrong passwords are indistinguishable to the
// caller.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	user, err := a.s.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return a.buildJWTString(user.ID, user.Role)
}

// buildJWTString signs a token carrying the user identity and role.
func (a *Auth) buildJWTString(userID, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExp)),
		},
		UserID: userID,
		Role:   role,
	})

	return token.SignedString(a.secret)
}

// ResolveToken parses and verifies a raw bearer token and returns its claims.
func (a *Auth) ResolveToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token or claims")
	}

	return claims, nil
}
