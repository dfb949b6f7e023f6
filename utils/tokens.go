package utils

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// TokenService issues and revokes the access/refresh token pair. The current
// refresh token for each user is recorded in redis under refresh:<userID>, so
// logout can revoke it and a refresh can rotate it.
type TokenService struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Redis         *redis.Client
}

type AccessToken struct {
	ID uint `json:"ID"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken"`
}

func (s *TokenService) CreateTokenPair(ctx context.Context, id uint) (*jwt.TokenPair, error) {
	accessTokenSigner := jwt.NewSigner(jwt.HS256, s.AccessSecret, s.AccessTTL)
	refreshTokenSigner := jwt.NewSigner(jwt.HS256, s.RefreshSecret, s.RefreshTTL)

	userID := strconv.FormatUint(uint64(id), 10)

	accessToken, err := accessTokenSigner.Sign(AccessToken{ID: id})
	if err != nil {
		return nil, err
	}

	refreshToken, err := refreshTokenSigner.Sign(jwt.Claims{Subject: userID})
	if err != nil {
		return nil, err
	}

	var tokenPair jwt.TokenPair
	tokenPair.AccessToken = accessToken
	tokenPair.RefreshToken = refreshToken

	// Small grace past the JWT expiry so the redis entry never outlives it
	// the other way around.
	err = s.Redis.Set(ctx, refreshKey(id), string(refreshToken), s.RefreshTTL+5*time.Minute).Err()
	if err != nil {
		return nil, err
	}

	return &tokenPair, nil
}

// ValidateStored reports whether the presented refresh token is the one
// currently recorded for the user.
func (s *TokenService) ValidateStored(ctx context.Context, id uint, token string) (bool, error) {
	stored, err := s.Redis.Get(ctx, refreshKey(id)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == token, nil
}

// Revoke drops the stored refresh token, ending the user's session.
func (s *TokenService) Revoke(ctx context.Context, id uint) error {
	return s.Redis.Del(ctx, refreshKey(id)).Err()
}

func refreshKey(id uint) string {
	return "refresh:" + strconv.FormatUint(uint64(id), 10)
}
