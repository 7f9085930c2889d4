package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lingolink/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ChatService is a thin proxy to the third-party chat provider: it mirrors
// user profiles and issues per-user chat tokens. Tokens are cached in
// Redis for their lifetime so repeated calls reuse the same token.
type ChatService struct {
	rdb      *redis.Client
	http     *http.Client
	baseURL  string
	apiKey   string
	secret   []byte
	tokenTTL time.Duration
}

func NewChatService(rdb *redis.Client, baseURL, apiKey, apiSecret string, tokenTTLSeconds int) *ChatService {
	return &ChatService{
		rdb:      rdb,
		http:     &http.Client{Timeout: 10 * time.Second},
		baseURL:  baseURL,
		apiKey:   apiKey,
		secret:   []byte(apiSecret),
		tokenTTL: time.Duration(tokenTTLSeconds) * time.Second,
	}
}

func chatTokenKey(userID uuid.UUID) string {
	return "chat:token:" + userID.String()
}

// Token returns a chat token for the user, from cache when possible.
func (s *ChatService) Token(ctx context.Context, userID uuid.UUID) (string, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, chatTokenKey(userID)).Result()
		if err == nil && cached != "" {
			return cached, nil
		}
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign chat token: %w", err)
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, chatTokenKey(userID), token, s.tokenTTL).Err(); err != nil {
			// cache miss on the next call, nothing else breaks
			return token, nil
		}
	}
	return token, nil
}

// UpsertUser mirrors the user's public profile to the chat provider.
func (s *ChatService) UpsertUser(ctx context.Context, user *model.User) error {
	payload := map[string]interface{}{
		"users": []map[string]string{{
			"id":    user.ID.String(),
			"name":  user.FullName,
			"image": user.ProfilePic,
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode chat user: %w", err)
	}

	url := fmt.Sprintf("%s/users?api_key=%s", s.baseURL, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	serverToken, err := s.serverToken()
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", serverToken)
	req.Header.Set("Stream-Auth-Type", "jwt")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("chat provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("chat provider returned %d", resp.StatusCode)
	}
	return nil
}

// serverToken signs a server-side token for provider API calls.
func (s *ChatService) serverToken() (string, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"server": true,
	}).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign server token: %w", err)
	}
	return token, nil
}
