package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pulseboard/internal/config"
	"pulseboard/internal/model"
)

// AuthService handles admin and respondent authentication
type AuthService struct {
	adminUsername string
	adminPassword string
	jwtSecret     []byte
	tokenTTL      time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		adminUsername: cfg.AdminUsername,
		adminPassword: cfg.AdminPassword,
		jwtSecret:     []byte(cfg.JWTSecret),
		tokenTTL:      cfg.TokenTTL,
	}
}

// Login validates admin credentials and returns a signed token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.adminUsername || password != s.adminPassword {
		return nil, ErrInvalidCredentials
	}

	adminID := "admin_" + uuid.New().String()[:8]
	now := time.Now()
	claims := &model.AdminClaims{
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:   tokenString,
		AdminID: adminID,
	}, nil
}

// ValidateAdminToken validates an admin JWT and returns claims
func (s *AuthService) ValidateAdminToken(tokenString string) (*model.AdminClaims, error) {
	claims := &model.AdminClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.AdminID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateRespondentToken creates a survey-scoped token for a respondent
func (s *AuthService) GenerateRespondentToken(surveyID, respondentID string) (string, error) {
	now := time.Now()
	claims := &model.RespondentClaims{
		SurveyID:     surveyID,
		RespondentID: respondentID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// ValidateRespondentToken validates a respondent JWT and returns claims
func (s *AuthService) ValidateRespondentToken(tokenString string) (*model.RespondentClaims, error) {
	claims := &model.RespondentClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.SurveyID == "" || claims.RespondentID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
