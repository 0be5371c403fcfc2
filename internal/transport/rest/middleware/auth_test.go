package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pulseboard/internal/config"
	"pulseboard/internal/service"
)

func newAuth() *service.AuthService {
	return service.NewAuthService(config.AuthConfig{
		JWTSecret:     "test-secret",
		AdminUsername: "admin",
		AdminPassword: "pw",
		TokenTTL:      time.Hour,
	})
}

func TestRequireAdmin(t *testing.T) {
	auth := newAuth()
	mw := NewAuthMiddleware(auth)

	var seen string
	h := mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetAdminID(r.Context())
	}))

	login, err := auth.Login("admin", "pw")
	if err != nil {
		t.Fatal(err)
	}
	respondent, err := auth.GenerateRespondentToken("s1", "r1")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"respondent token", "Bearer " + respondent, http.StatusUnauthorized},
		{"admin token", "Bearer " + login.Token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/surveys", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}

	if seen != login.AdminID {
		t.Fatalf("admin id in context = %q, want %q", seen, login.AdminID)
	}
}

func TestRequireRespondentAcceptsQueryToken(t *testing.T) {
	auth := newAuth()
	mw := NewAuthMiddleware(auth)

	var surveyID, respondentID string
	h := mw.RequireRespondent(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		surveyID = GetSurveyID(r.Context())
		respondentID = GetRespondentID(r.Context())
	}))

	token, err := auth.GenerateRespondentToken("s1", "r1")
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/v1/surveys/s1/questions?token="+token, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if surveyID != "s1" || respondentID != "r1" {
		t.Fatalf("context = %q/%q", surveyID, respondentID)
	}
}
