package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/avet102/meal-hub/internal/advisor"
	"github.com/avet102/meal-hub/internal/ai"
	"github.com/avet102/meal-hub/internal/auth"
	"github.com/avet102/meal-hub/internal/calibration"
	"github.com/avet102/meal-hub/internal/config"
	"github.com/avet102/meal-hub/internal/estimator"
	"github.com/avet102/meal-hub/internal/mealpatterns"
	"github.com/avet102/meal-hub/internal/profiles"
	"github.com/avet102/meal-hub/internal/reports"
	"github.com/avet102/meal-hub/internal/storage"
	"github.com/avet102/meal-hub/internal/storage/memory"
	"github.com/avet102/meal-hub/internal/storage/postgres"
	"github.com/google/uuid"
)

// Server is the HTTP server
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	storage        storage.Storage
	authMiddleware *auth.Middleware
}

// New creates a new HTTP server
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	s.initStorage()
	s.routes()
	return s
}

// initStorage picks the storage backend (Memory or Postgres)
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("Using in-memory storage")
		s.storage = memory.New()
	} else {
		log.Println("Connecting to PostgreSQL...")
		ctx := context.Background()
		pgStorage, err := postgres.New(ctx, s.config.DatabaseURL)
		if err != nil {
			log.Printf("PostgreSQL connection failed: %v", err)
			log.Println("Falling back to in-memory storage")
			s.storage = memory.New()
		} else {
			log.Println("PostgreSQL connected")
			s.storage = pgStorage
		}
	}
}

// routes registers all API routes
func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Auth API (no auth required)
	authService := auth.NewService(s.config)
	authHandler := auth.NewHandlers(authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	// POST /v1/auth/dev - local dev token
	s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)

	// Profiles API
	profileService := profiles.NewService(s.storage)
	profileHandler := profiles.NewHandler(profileService)

	// GET /v1/profiles - list all profiles
	s.mux.HandleFunc("GET /v1/profiles", profileHandler.HandleList)

	// POST /v1/profiles - create profile
	s.mux.HandleFunc("POST /v1/profiles", profileHandler.HandleCreate)

	// PATCH /v1/profiles/{id} - update profile
	s.mux.HandleFunc("PATCH /v1/profiles/", profileHandler.HandleUpdate)

	// DELETE /v1/profiles/{id} - delete profile
	s.mux.HandleFunc("DELETE /v1/profiles/", profileHandler.HandleDelete)

	profileAdapter := &profileStorageAdapter{storage: s.storage}

	// Meal pattern API
	patternsService := mealpatterns.NewService(s.getMealPatternsStorage(), profileAdapter)

	// GET /v1/meal-pattern - saved pattern or the system default
	s.mux.HandleFunc("GET /v1/meal-pattern", mealpatterns.HandleGet(patternsService))

	// PUT /v1/meal-pattern - replace the saved pattern
	s.mux.HandleFunc("PUT /v1/meal-pattern", mealpatterns.HandlePut(patternsService))

	// Calibration API
	// The pattern service doubles as the pattern source for new periods
	calibrationService := calibration.NewService(s.getCalibrationStorage(), profileAdapter, patternsService, nil)

	// GET /v1/calibration - current period with derived day statuses
	s.mux.HandleFunc("GET /v1/calibration", calibration.HandleGet(calibrationService))

	// POST /v1/calibration/start - start a period (idempotent)
	s.mux.HandleFunc("POST /v1/calibration/start", calibration.HandleStart(calibrationService))

	// POST /v1/calibration/dismiss - hide the period from the UI
	s.mux.HandleFunc("POST /v1/calibration/dismiss", calibration.HandleDismiss(calibrationService))

	// POST /v1/calibration/align - re-anchor a stale period to this week
	s.mux.HandleFunc("POST /v1/calibration/align", calibration.HandleAlign(calibrationService))

	// POST /v1/calibration/days/{day}/meals - add a meal to a day
	s.mux.HandleFunc("POST /v1/calibration/days/{day}/meals", calibration.HandleAddMeal(calibrationService))

	// PATCH /v1/calibration/days/{day}/meals/{id} - edit a meal
	s.mux.HandleFunc("PATCH /v1/calibration/days/{day}/meals/{id}", calibration.HandleUpdateMeal(calibrationService))

	// DELETE /v1/calibration/days/{day}/meals/{id} - remove a meal
	s.mux.HandleFunc("DELETE /v1/calibration/days/{day}/meals/{id}", calibration.HandleRemoveMeal(calibrationService))

	// PUT /v1/calibration/days/{day}/meals/order - reorder a day's meals
	s.mux.HandleFunc("PUT /v1/calibration/days/{day}/meals/order", calibration.HandleReorderMeals(calibrationService))

	// POST /v1/calibration/days/{day}/complete - finish a day
	s.mux.HandleFunc("POST /v1/calibration/days/{day}/complete", calibration.HandleCompleteDay(calibrationService))

	// POST /v1/calibration/tracking-mode - post-period decision
	s.mux.HandleFunc("POST /v1/calibration/tracking-mode", calibration.HandleTrackingMode(calibrationService))

	// Advisor API
	advisorService := advisor.NewService(s.getAdvisorStorage(), profileAdapter, calibrationService)

	// GET /v1/advisor/additions - list additions
	s.mux.HandleFunc("GET /v1/advisor/additions", advisor.HandleList(advisorService))

	// POST /v1/advisor/additions - propose an addition
	s.mux.HandleFunc("POST /v1/advisor/additions", advisor.HandleCreate(advisorService))

	// POST /v1/advisor/additions/{id}/approve - apply to the meal
	s.mux.HandleFunc("POST /v1/advisor/additions/{id}/approve", advisor.HandleApprove(advisorService))

	// POST /v1/advisor/additions/{id}/undo - restore previous content
	s.mux.HandleFunc("POST /v1/advisor/additions/{id}/undo", advisor.HandleUndo(advisorService))

	// Estimates API
	aiProvider := ai.NewProvider(s.config)
	estimateCache := estimator.NewCache(s.config.EstimateCacheSize)
	assisted := estimator.NewAssisted(aiProvider, estimateCache, time.Duration(s.config.AITimeoutSeconds)*time.Second)

	// POST /v1/estimates - blocking hybrid estimate
	s.mux.HandleFunc("POST /v1/estimates", estimator.HandleEstimate(assisted))

	// POST /v1/estimates/provisional - instant rule-based estimate
	s.mux.HandleFunc("POST /v1/estimates/provisional", estimator.HandleProvisional(assisted))

	// Reports API
	reportsService := reports.NewService(calibrationService)
	reportsHandler := reports.NewHandlers(reportsService)

	// GET /v1/calibration/report - week summary PDF
	s.mux.HandleFunc("GET /v1/calibration/report", reportsHandler.HandleWeekSummary)
}

// getCalibrationStorage returns the calibration storage based on storage type
func (s *Server) getCalibrationStorage() calibration.Storage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetCalibrationStorage()
	case *postgres.PostgresStorage:
		return st.GetCalibrationStorage()
	default:
		log.Fatal("unknown storage type")
		return nil
	}
}

// getMealPatternsStorage returns the meal patterns storage based on storage type
func (s *Server) getMealPatternsStorage() mealpatterns.Storage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetMealPatternsStorage()
	case *postgres.PostgresStorage:
		return st.GetMealPatternsStorage()
	default:
		log.Fatal("unknown storage type")
		return nil
	}
}

// getAdvisorStorage returns the advisor storage based on storage type
func (s *Server) getAdvisorStorage() advisor.Storage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetAdvisorStorage()
	case *postgres.PostgresStorage:
		return st.GetAdvisorStorage()
	default:
		log.Fatal("unknown storage type")
		return nil
	}
}

// profileStorageAdapter adapts storage.Storage to the per-package
// ProfileStorage interfaces
type profileStorageAdapter struct {
	storage storage.Storage
}

func (p *profileStorageAdapter) GetProfile(ctx context.Context, id uuid.UUID) (*storage.Profile, error) {
	return p.storage.GetProfile(ctx, id)
}

// handleHealthz reports server status
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Start runs the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	// Build middleware chain (outermost first): CORS → Rate Limit → Auth → Router
	var handler http.Handler = s.mux
	if s.authMiddleware != nil && s.config.AuthMode != "none" {
		if s.config.AuthRequired {
			handler = s.authMiddleware.RequireAuth(handler)
		} else {
			handler = s.authMiddleware.OptionalAuth(handler)
		}
	}
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)

	log.Printf("Server listening on http://localhost%s\n", addr)
	log.Printf("Health check: http://localhost%s/healthz\n", addr)
	log.Printf("Calibration API: http://localhost%s/v1/calibration\n", addr)

	return http.ListenAndServe(addr, handler)
}

// Close releases storage resources
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
