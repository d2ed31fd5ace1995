package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"provideo-rentals/internal/model"
	"provideo-rentals/internal/repository"
)

const (
	magicLinkTTL    = 15 * time.Minute
	customerSession = 28 * 24 * time.Hour
	adminSession    = 12 * time.Hour

	adminRole = "admin"
)

type AuthService interface {
	// RequestLogin emails a magic link to a customer who has at least one
	// order under this email. No orders means no customer record either.
	RequestLogin(ctx context.Context, email string) error
	// Verify consumes a magic-link token and returns a signed session token
	// carrying the email. Tokens are single use.
	Verify(ctx context.Context, email, token string) (string, error)
	ParseSession(token string) (string, error)

	AdminLogin(password string) (string, error)
	ParseAdmin(token string) error
}

type authServiceImpl struct {
	orderRepo     repository.OrderRepository
	customerRepo  repository.CustomerRepository
	authTokenRepo repository.AuthTokenRepository
	mailer        Mailer
	baseURL       string
	jwtSecret     []byte
	adminPassword string
}

func NewAuthService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	authTokenRepo repository.AuthTokenRepository,
	mailer Mailer,
	baseURL, jwtSecret, adminPassword string,
) AuthService {
	return &authServiceImpl{
		orderRepo:     orderRepo,
		customerRepo:  customerRepo,
		authTokenRepo: authTokenRepo,
		mailer:        mailer,
		baseURL:       baseURL,
		jwtSecret:     []byte(jwtSecret),
		adminPassword: adminPassword,
	}
}

func (s *authServiceImpl) RequestLogin(ctx context.Context, email string) error {
	count, err := s.orderRepo.CountByContactEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("count orders for email: %w", err)
	}
	if count == 0 {
		return ErrNoOrders
	}

	if err := s.customerRepo.Upsert(ctx, email); err != nil {
		return fmt.Errorf("upsert customer: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("generate token: %w", err)
	}
	token := hex.EncodeToString(raw)

	err = s.authTokenRepo.Upsert(ctx, &model.AuthToken{
		Email:     email,
		TokenHash: hashToken(token),
		ExpiresAt: time.Now().Add(magicLinkTTL),
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("store auth token: %w", err)
	}

	link := fmt.Sprintf("%s/api/auth/verify?token=%s&email=%s", s.baseURL, token, email)
	if err := s.mailer.SendMagicLink(email, link); err != nil {
		return fmt.Errorf("send magic link: %w", err)
	}
	return nil
}

func (s *authServiceImpl) Verify(ctx context.Context, email, token string) (string, error) {
	found, err := s.authTokenRepo.FindValid(ctx, email, hashToken(token), time.Now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", fmt.Errorf("look up token: %w", err)
	}

	// Single use: burn the token before issuing the session.
	if err := s.authTokenRepo.Delete(ctx, found.Email); err != nil {
		return "", fmt.Errorf("delete used token: %w", err)
	}

	return s.signSession(email, "", customerSession)
}

func (s *authServiceImpl) ParseSession(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	email, _ := claims["sub"].(string)
	if email == "" || claims["role"] != nil {
		return "", ErrInvalidToken
	}
	return email, nil
}

func (s *authServiceImpl) AdminLogin(password string) (string, error) {
	if s.adminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) != 1 {
		return "", ErrBadCredentials
	}
	return s.signSession("admin", adminRole, adminSession)
}

func (s *authServiceImpl) ParseAdmin(token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	if claims["role"] != adminRole {
		return ErrInvalidToken
	}
	return nil
}

func (s *authServiceImpl) signSession(sub, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	if role != "" {
		claims["role"] = role
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (s *authServiceImpl) parse(token string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
