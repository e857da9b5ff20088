package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bvester/matching-api/internal/errors"
	"github.com/bvester/matching-api/internal/repository"
	"github.com/bvester/matching-api/internal/services"
)

// Mock matching service for testing
type mockMatchingService struct {
	lastInvestorID string
	lastBusinessID string
	lastOpts       services.MatchOptions

	investorResponse *services.InvestorMatchResponse
	businessResponse *services.BusinessMatchResponse
	pairScore        *services.PairScore
	stats            *repository.MatchActivityStats
	err              error
}

func (m *mockMatchingService) FindMatchesForInvestor(investorID string, opts services.MatchOptions) (*services.InvestorMatchResponse, error) {
	m.lastInvestorID = investorID
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.investorResponse, nil
}

func (m *mockMatchingService) FindMatchesForBusiness(businessID string, opts services.MatchOptions) (*services.BusinessMatchResponse, error) {
	m.lastBusinessID = businessID
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.businessResponse, nil
}

func (m *mockMatchingService) ScorePair(investorID, businessID string) (*services.PairScore, error) {
	m.lastInvestorID = investorID
	m.lastBusinessID = businessID
	if m.err != nil {
		return nil, m.err
	}
	return m.pairScore, nil
}

func (m *mockMatchingService) GetActivityStats() (*repository.MatchActivityStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

func setupMatchingRouter(mock *mockMatchingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewMatchingHandler(mock)

	router := gin.New()
	router.GET("/matching/investors/:id/matches", handler.FindMatchesForInvestor)
	router.GET("/matching/businesses/:id/matches", handler.FindMatchesForBusiness)
	router.GET("/matching/pairs/:investor_id/:business_id", handler.ScorePair)
	router.GET("/matching/stats", handler.GetActivityStats)
	return router
}

func TestMatchingHandler_FindMatchesForInvestor(t *testing.T) {
	mock := &mockMatchingService{
		investorResponse: &services.InvestorMatchResponse{
			Matches:        []services.MatchResult{},
			TotalAvailable: 5,
		},
	}
	router := setupMatchingRouter(mock)

	investorID := uuid.New().String()
	req, _ := http.NewRequest("GET", "/matching/investors/"+investorID+"/matches", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}
	if mock.lastInvestorID != investorID {
		t.Errorf("Expected investor ID %s passed to service, got %s", investorID, mock.lastInvestorID)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if _, exists := response["result"]; !exists {
		t.Error("Expected 'result' field in response")
	}
}

func TestMatchingHandler_ParsesQueryOptions(t *testing.T) {
	mock := &mockMatchingService{
		investorResponse: &services.InvestorMatchResponse{},
	}
	router := setupMatchingRouter(mock)

	url := "/matching/investors/" + uuid.New().String() + "/matches" +
		"?min_score=70&limit=5&sectors=technology,healthcare&countries=kenya&min_funding=10000&max_funding=500000"
	req, _ := http.NewRequest("GET", url, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	opts := mock.lastOpts
	if opts.MinScore == nil || *opts.MinScore != 70 {
		t.Errorf("Expected min score 70, got %v", opts.MinScore)
	}
	if opts.Limit != 5 {
		t.Errorf("Expected limit 5, got %d", opts.Limit)
	}
	if len(opts.Sectors) != 2 || string(opts.Sectors[0]) != "technology" {
		t.Errorf("Expected parsed sectors, got %v", opts.Sectors)
	}
	if len(opts.Countries) != 1 || opts.Countries[0] != "kenya" {
		t.Errorf("Expected parsed countries, got %v", opts.Countries)
	}
	if opts.MinFunding == nil || *opts.MinFunding != 10000 {
		t.Errorf("Expected min funding 10000, got %v", opts.MinFunding)
	}
	if opts.MaxFunding == nil || *opts.MaxFunding != 500000 {
		t.Errorf("Expected max funding 500000, got %v", opts.MaxFunding)
	}
}

func TestMatchingHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found maps to 404", errors.NotFound("investor profile not found", nil), http.StatusNotFound},
		{"invalid input maps to 400", errors.InvalidInput("invalid investor ID", nil), http.StatusBadRequest},
		{"retrieval failure maps to 500", errors.RetrievalFailed("pool unavailable", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockMatchingService{err: tt.err}
			router := setupMatchingRouter(mock)

			req, _ := http.NewRequest("GET", "/matching/investors/"+uuid.New().String()+"/matches", nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, resp.Code)
			}
		})
	}
}

func TestMatchingHandler_FindMatchesForBusiness(t *testing.T) {
	mock := &mockMatchingService{
		businessResponse: &services.BusinessMatchResponse{
			FundingPotential: 55,
			OutreachStrategy: services.OutreachStrategy{Priority: "medium"},
		},
	}
	router := setupMatchingRouter(mock)

	businessID := uuid.New().String()
	req, _ := http.NewRequest("GET", "/matching/businesses/"+businessID+"/matches", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}
	if mock.lastBusinessID != businessID {
		t.Errorf("Expected business ID %s passed to service, got %s", businessID, mock.lastBusinessID)
	}
}

func TestMatchingHandler_ScorePair(t *testing.T) {
	investorID := uuid.New()
	businessID := uuid.New()
	mock := &mockMatchingService{
		pairScore: &services.PairScore{InvestorID: investorID, BusinessID: businessID},
	}
	router := setupMatchingRouter(mock)

	req, _ := http.NewRequest("GET", "/matching/pairs/"+investorID.String()+"/"+businessID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}
	if mock.lastInvestorID != investorID.String() || mock.lastBusinessID != businessID.String() {
		t.Error("Expected both IDs passed through to the service")
	}
}

func TestMatchingHandler_GetActivityStats(t *testing.T) {
	mock := &mockMatchingService{
		stats: &repository.MatchActivityStats{TotalRankings: 42},
	}
	router := setupMatchingRouter(mock)

	req, _ := http.NewRequest("GET", "/matching/stats", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var response struct {
		Stats repository.MatchActivityStats `json:"stats"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Stats.TotalRankings != 42 {
		t.Errorf("Expected 42 total rankings, got %d", response.Stats.TotalRankings)
	}

	mock.err = errors.DatabaseError("query failed", nil)
	req, _ = http.NewRequest("GET", "/matching/stats", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500 for error case, got %d", resp.Code)
	}
}
