package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"pulseboard/internal/config"
	"pulseboard/internal/model"
)

type fakeSurveyRepo struct {
	mu      sync.Mutex
	surveys map[string]model.Survey
	next    int
}

func newFakeSurveyRepo() *fakeSurveyRepo {
	return &fakeSurveyRepo{surveys: map[string]model.Survey{}}
}

func (r *fakeSurveyRepo) Create(ctx context.Context, s *model.Survey) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		r.next++
		s.ID = fmt.Sprintf("survey-%d", r.next)
	}
	s.CreatedAt = time.Now()
	r.surveys[s.ID] = *s
	return s.ID, nil
}

func (r *fakeSurveyRepo) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.surveys[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeSurveyRepo) GetByClientID(ctx context.Context, clientID string) ([]*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Survey{}
	for _, s := range r.surveys {
		if clientID == "" || s.ClientID == clientID {
			s := s
			out = append(out, &s)
		}
	}
	return out, nil
}

func (r *fakeSurveyRepo) Update(ctx context.Context, s *model.Survey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surveys[s.ID] = *s
	return nil
}

func (r *fakeSurveyRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.surveys, id)
	return nil
}

type fakeResponseRepo struct {
	mu           sync.Mutex
	responses    []*model.SurveyResponse
	loads        int
	beforeCreate func() // runs before a response is stored
}

func (r *fakeResponseRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (r *fakeResponseRepo) Create(ctx context.Context, resp *model.SurveyResponse) error {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.responses {
		if existing.SurveyID == resp.SurveyID && existing.RespondentID == resp.RespondentID {
			return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key"}}}
		}
	}
	resp.ID = fmt.Sprintf("resp-%d", len(r.responses)+1)
	r.responses = append(r.responses, resp)
	return nil
}

func (r *fakeResponseRepo) GetBySurveyID(ctx context.Context, surveyID string) ([]*model.SurveyResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	out := []*model.SurveyResponse{}
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID {
			out = append(out, resp)
		}
	}
	return out, nil
}

func (r *fakeResponseRepo) CountBySurveyID(ctx context.Context, surveyID string) (int64, error) {
	all, _ := r.GetBySurveyID(ctx, surveyID)
	return int64(len(all)), nil
}

func (r *fakeResponseRepo) Exists(ctx context.Context, surveyID, respondentID string) (bool, error) {
	all, _ := r.GetBySurveyID(ctx, surveyID)
	for _, resp := range all {
		if resp.RespondentID == respondentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeResponseRepo) Delete(ctx context.Context, surveyID, respondentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, resp := range r.responses {
		if resp.SurveyID == surveyID && resp.RespondentID == respondentID {
			r.responses = append(r.responses[:i], r.responses[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeResponseRepo) DeleteBySurveyID(ctx context.Context, surveyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.responses[:0]
	for _, resp := range r.responses {
		if resp.SurveyID != surveyID {
			kept = append(kept, resp)
		}
	}
	r.responses = kept
	return nil
}

func (r *fakeResponseRepo) loadCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loads
}

type fakeReportRepo struct {
	mu        sync.Mutex
	snapshots map[string]*model.AnalyticsSnapshot
	saveErr   error
}

func (r *fakeReportRepo) SaveSnapshot(ctx context.Context, s *model.AnalyticsSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	if r.snapshots == nil {
		r.snapshots = map[string]*model.AnalyticsSnapshot{}
	}
	r.snapshots[s.SurveyID] = s
	return nil
}

func (r *fakeReportRepo) GetSnapshot(ctx context.Context, surveyID string) (*model.AnalyticsSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshots[surveyID], nil
}

func (r *fakeReportRepo) GetSnapshotsByClientID(ctx context.Context, clientID string) ([]*model.AnalyticsSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.AnalyticsSnapshot{}
	for _, s := range r.snapshots {
		if s.ClientID == clientID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeQuestionRepo struct {
	questions map[string]*model.QuestionTemplate
	next      int
}

func (r *fakeQuestionRepo) Create(ctx context.Context, q *model.QuestionTemplate) error {
	if r.questions == nil {
		r.questions = map[string]*model.QuestionTemplate{}
	}
	if q.ID == "" {
		r.next++
		q.ID = fmt.Sprintf("tpl-%d", r.next)
	}
	r.questions[q.ID] = q
	return nil
}

func (r *fakeQuestionRepo) GetByID(ctx context.Context, id string) (*model.QuestionTemplate, error) {
	return r.questions[id], nil
}

func (r *fakeQuestionRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.QuestionTemplate, error) {
	out := []*model.QuestionTemplate{}
	for _, id := range ids {
		if q, ok := r.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) Update(ctx context.Context, q *model.QuestionTemplate) error {
	r.questions[q.ID] = q
	return nil
}

func (r *fakeQuestionRepo) Delete(ctx context.Context, id string) error {
	delete(r.questions, id)
	return nil
}

func (r *fakeQuestionRepo) List(ctx context.Context, category string, t model.QuestionType) ([]*model.QuestionTemplate, error) {
	out := []*model.QuestionTemplate{}
	for _, q := range r.questions {
		if (category == "" || q.Category == category) && (t == "" || q.Type == t) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeQuestionRepo) Categories(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, q := range r.questions {
		if !seen[q.Category] {
			seen[q.Category] = true
			out = append(out, q.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

type fakeAnalyticsCache struct {
	mu       sync.Mutex
	surveys  map[string]*model.SurveyAnalytics
	segments map[string][]model.SegmentResult
}

func newFakeAnalyticsCache() *fakeAnalyticsCache {
	return &fakeAnalyticsCache{
		surveys:  map[string]*model.SurveyAnalytics{},
		segments: map[string][]model.SegmentResult{},
	}
}

func (c *fakeAnalyticsCache) GetSurvey(ctx context.Context, surveyID string) (*model.SurveyAnalytics, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surveys[surveyID], nil
}

func (c *fakeAnalyticsCache) SetSurvey(ctx context.Context, a *model.SurveyAnalytics) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surveys[a.SurveyID] = a
	return nil
}

func (c *fakeAnalyticsCache) GetSegments(ctx context.Context, surveyID, field string) ([]model.SegmentResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.segments[surveyID+"/"+field], nil
}

func (c *fakeAnalyticsCache) SetSegments(ctx context.Context, surveyID, field string, s []model.SegmentResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.segments[surveyID+"/"+field] = s
	return nil
}

func (c *fakeAnalyticsCache) Invalidate(ctx context.Context, surveyID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.surveys, surveyID)
	for k := range c.segments {
		if len(k) > len(surveyID) && k[:len(surveyID)+1] == surveyID+"/" {
			delete(c.segments, k)
		}
	}
	return nil
}

func (c *fakeAnalyticsCache) cached(surveyID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.surveys[surveyID]
	return ok
}

type fakeRespondentCache struct {
	mu   sync.Mutex
	sets map[string]map[string]bool
	down bool // MarkResponded fails as if Redis were unreachable
}

func (c *fakeRespondentCache) set(surveyID string) map[string]bool {
	if c.sets == nil {
		c.sets = map[string]map[string]bool{}
	}
	if c.sets[surveyID] == nil {
		c.sets[surveyID] = map[string]bool{}
	}
	return c.sets[surveyID]
}

func (c *fakeRespondentCache) MarkResponded(ctx context.Context, surveyID, respondentID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return false, errors.New("redis: connection refused")
	}
	s := c.set(surveyID)
	if s[respondentID] {
		return false, nil
	}
	s[respondentID] = true
	return true, nil
}

func (c *fakeRespondentCache) Unmark(ctx context.Context, surveyID, respondentID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.set(surveyID), respondentID)
	return nil
}

func (c *fakeRespondentCache) Count(ctx context.Context, surveyID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.set(surveyID))), nil
}

func (c *fakeRespondentCache) Clear(ctx context.Context, surveyID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sets, surveyID)
	return nil
}

type fakeParticipationCache struct {
	mu     sync.Mutex
	counts map[string]map[string]int
}

func (c *fakeParticipationCache) Increment(ctx context.Context, surveyID, field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]map[string]int{}
	}
	key := surveyID + "/" + field
	if c.counts[key] == nil {
		c.counts[key] = map[string]int{}
	}
	c.counts[key][value]++
	return nil
}

func (c *fakeParticipationCache) Get(ctx context.Context, surveyID, field string) ([]model.SegmentCount, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []model.SegmentCount{}
	for v, n := range c.counts[surveyID+"/"+field] {
		out = append(out, model.SegmentCount{Value: v, Responses: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Responses != out[j].Responses {
			return out[i].Responses > out[j].Responses
		}
		return out[i].Value < out[j].Value
	})
	return out, nil
}

func (c *fakeParticipationCache) Clear(ctx context.Context, surveyID string, fields ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range fields {
		delete(c.counts, surveyID+"/"+f)
	}
	return nil
}

type event struct {
	surveyID string
	msgType  string
	payload  interface{}
}

type fakeBroadcaster struct {
	events       chan event
	mu           sync.Mutex
	disconnected []string
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{events: make(chan event, 16)}
}

func (b *fakeBroadcaster) BroadcastToDashboards(surveyID, msgType string, payload interface{}) {
	b.events <- event{surveyID: surveyID, msgType: msgType, payload: payload}
}

func (b *fakeBroadcaster) DisconnectSurvey(surveyID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disconnected = append(b.disconnected, surveyID)
}

func (b *fakeBroadcaster) next(t *testing.T) event {
	t.Helper()
	select {
	case e := <-b.events:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("no dashboard event")
	}
	return event{}
}

type testEnv struct {
	surveys      *fakeSurveyRepo
	responses    *fakeResponseRepo
	reports      *fakeReportRepo
	cache        *fakeAnalyticsCache
	respondents  *fakeRespondentCache
	participants *fakeParticipationCache
	broadcaster  *fakeBroadcaster

	auth      *AuthService
	survey    *SurveyService
	response  *ResponseService
	analytics *AnalyticsService
	report    *ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	e := &testEnv{
		surveys:      newFakeSurveyRepo(),
		responses:    &fakeResponseRepo{},
		reports:      &fakeReportRepo{},
		cache:        newFakeAnalyticsCache(),
		respondents:  &fakeRespondentCache{},
		participants: &fakeParticipationCache{},
		broadcaster:  newFakeBroadcaster(),
	}
	e.auth = NewAuthService(config.AuthConfig{
		JWTSecret:     "test-secret",
		AdminUsername: "admin",
		AdminPassword: "pw",
		TokenTTL:      time.Hour,
	})
	e.analytics = NewAnalyticsService(e.surveys, e.responses, e.cache, e.respondents, e.participants, 2)
	e.report = NewReportService(e.reports, e.analytics)
	e.survey = NewSurveyService(e.surveys, e.responses, e.report, e.analytics)
	e.response = NewResponseService(e.surveys, e.responses, e.respondents, e.participants, e.analytics, e.auth)
	e.survey.SetBroadcaster(e.broadcaster)
	e.response.SetBroadcaster(e.broadcaster)
	return e
}

func pulseSurvey() *model.Survey {
	return &model.Survey{
		ClientID:       "acme",
		Title:          "Q3 pulse",
		TotalEmployees: 4,
		SegmentFields:  []string{"department"},
		Questions: []model.SelectedQuestion{
			{ID: "enps", Text: "Recommend us?", Type: model.QuestionTypeNPS, Category: "Engagement", IsMandatory: true},
			{ID: "eng1", Text: "I enjoy my work", Type: model.QuestionTypeLikert, Category: "Engagement"},
			{ID: "lead1", Text: "My manager supports me", Type: model.QuestionTypeLikert, Category: "Leadership"},
			{ID: "mode", Text: "Work mode", Type: model.QuestionTypeMultipleChoice, Category: "Work Mode", Options: []string{"Remote", "Office", "Hybrid"}},
			{ID: "comments", Text: "Anything else?", Type: model.QuestionTypeOpenText, Category: "Feedback"},
		},
	}
}

// openSurvey creates and opens a survey, draining nothing from the broadcaster
func (e *testEnv) openSurvey(t *testing.T, s *model.Survey) string {
	t.Helper()
	ctx := context.Background()
	id, err := e.survey.Create(ctx, s)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.survey.Open(ctx, id); err != nil {
		t.Fatal(err)
	}
	return id
}

func (e *testEnv) submit(t *testing.T, surveyID, respondentID, dept string, answers map[string]model.AnswerValue) {
	t.Helper()
	req := &SubmitRequest{Answers: answers}
	if dept != "" {
		req.Segments = map[string]string{"department": dept}
	}
	if _, err := e.response.Submit(context.Background(), surveyID, respondentID, req); err != nil {
		t.Fatalf("submit %s: %v", respondentID, err)
	}
	if ev := e.broadcaster.next(t); ev.msgType != EventAnalyticsUpdate {
		t.Fatalf("event = %q, want %q", ev.msgType, EventAnalyticsUpdate)
	}
}
