package middleware

import (
	"context"
	"net/http"
	"strings"

	"pulseboard/internal/service"
)

type contextKey string

const (
	AdminIDKey      contextKey = "adminId"
	RespondentIDKey contextKey = "respondentId"
	SurveyIDKey     contextKey = "surveyId"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireAdmin validates the admin JWT from the Authorization header
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			unauthorized(w, "missing authorization header")
			return
		}

		claims, err := m.authSvc.ValidateAdminToken(token)
		if err != nil {
			unauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), AdminIDKey, claims.AdminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRespondent validates a survey-scoped respondent JWT from the
// Authorization header or the token query param
func (m *AuthMiddleware) RequireRespondent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			unauthorized(w, "missing authorization")
			return
		}

		claims, err := m.authSvc.ValidateRespondentToken(token)
		if err != nil {
			unauthorized(w, "invalid or expired token")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, RespondentIDKey, claims.RespondentID)
		ctx = context.WithValue(ctx, SurveyIDKey, claims.SurveyID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdminID extracts the admin ID from context
func GetAdminID(ctx context.Context) string {
	if v, ok := ctx.Value(AdminIDKey).(string); ok {
		return v
	}
	return ""
}

// GetRespondentID extracts the respondent ID from context
func GetRespondentID(ctx context.Context) string {
	if v, ok := ctx.Value(RespondentIDKey).(string); ok {
		return v
	}
	return ""
}

// GetSurveyID extracts the survey the respondent token was issued for
func GetSurveyID(ctx context.Context) string {
	if v, ok := ctx.Value(SurveyIDKey).(string); ok {
		return v
	}
	return ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
