package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/sebuszqo/FinanceTracker/internal/auth"
	"github.com/sebuszqo/FinanceTracker/internal/config"
	database "github.com/sebuszqo/FinanceTracker/internal/db"
	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/infrastructure"
	"github.com/sebuszqo/FinanceTracker/internal/finance/interfaces"
	"github.com/sebuszqo/FinanceTracker/internal/finance/tips"
	"github.com/sebuszqo/FinanceTracker/internal/logging"
	"github.com/sebuszqo/FinanceTracker/internal/user"
)

const shutdownTimeout = 30 * time.Second

type Response struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("JSON encoding error", logging.FieldError, err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, errs ...[]string) {
	body := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errs) > 0 && len(errs[0]) > 0 {
		body["errors"] = errs[0]
	}
	respondJSON(w, status, body)
}

type healthChecker interface {
	Health(ctx context.Context) map[string]string
}

type Server struct {
	router         http.Handler
	authHandler    *auth.Handler
	userHandler    *user.Handler
	authService    auth.Service
	financeHandler *interfaces.FinanceHandler
	db             healthChecker
}

func NewServer(authHandler *auth.Handler, authService auth.Service, userHandler *user.Handler, financeHandler *interfaces.FinanceHandler, db healthChecker) *Server {
	return &Server{
		authHandler:    authHandler,
		userHandler:    userHandler,
		authService:    authService,
		financeHandler: financeHandler,
		db:             db,
		router:         http.NewServeMux(),
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusNotFound, Response{Message: "Path not found"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	stats := s.db.Health(r.Context())
	if stats["status"] != "up" {
		logging.FromContext(r.Context()).Warn("Readiness check failed", logging.FieldError, stats["error"])
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

func (s *Server) RegisterRoutes() {
	protected := s.authService.JWTAccessTokenMiddleware()
	fh := s.financeHandler
	withParam := func(handler http.HandlerFunc, param string) http.Handler {
		return protected(fh.ValidatePathParamsMiddleware(handler, param))
	}

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("POST /api/auth/logout", http.HandlerFunc(s.authHandler.HandleLogout))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()
	protectedRoutes.Handle("GET /api/protected/profile", protected(http.HandlerFunc(s.userHandler.HandleGetUserProfile)))
	protectedRoutes.Handle("POST /api/protected/change-password", protected(http.HandlerFunc(s.userHandler.HandleChangePassword)))

	protectedRoutes.Handle("POST /api/protected/2fa/register", protected(http.HandlerFunc(s.authHandler.HandleRegisterTwoFactor)))
	protectedRoutes.Handle("POST /api/protected/2fa/verify-registration", protected(http.HandlerFunc(s.authHandler.HandleVerifyTwoFactorRegistration)))
	protectedRoutes.Handle("DELETE /api/protected/2fa/disable", protected(http.HandlerFunc(s.authHandler.HandleDisableTwoFactor)))

	// BUCKETS API
	protectedRoutes.Handle("GET /api/protected/buckets", protected(http.HandlerFunc(fh.GetBuckets)))
	protectedRoutes.Handle("POST /api/protected/buckets", protected(http.HandlerFunc(fh.CreateBucket)))
	protectedRoutes.Handle("GET /api/protected/buckets/summary", protected(http.HandlerFunc(fh.GetBucketsSummary)))
	protectedRoutes.Handle("GET /api/protected/buckets/{bucketID}", withParam(fh.GetBucket, "bucketID"))
	protectedRoutes.Handle("PUT /api/protected/buckets/{bucketID}/amount", withParam(fh.UpdateBucketAmount, "bucketID"))
	protectedRoutes.Handle("PUT /api/protected/buckets/{bucketID}", withParam(fh.UpdateBucket, "bucketID"))
	protectedRoutes.Handle("DELETE /api/protected/buckets/{bucketID}", withParam(fh.DeleteBucket, "bucketID"))
	protectedRoutes.Handle("GET /api/protected/bucket_types", protected(http.HandlerFunc(fh.GetBucketTypes)))

	// EXPENSES API
	protectedRoutes.Handle("GET /api/protected/expenses", protected(http.HandlerFunc(fh.GetExpenses)))
	protectedRoutes.Handle("POST /api/protected/expenses", protected(http.HandlerFunc(fh.CreateExpense)))
	protectedRoutes.Handle("GET /api/protected/expenses/analysis", protected(http.HandlerFunc(fh.GetExpenseAnalysis)))
	protectedRoutes.Handle("DELETE /api/protected/expenses/{expenseID}", withParam(fh.DeleteExpense, "expenseID"))
	protectedRoutes.Handle("GET /api/protected/expense_categories", protected(http.HandlerFunc(fh.GetExpenseCategories)))

	// BUDGETS API
	protectedRoutes.Handle("GET /api/protected/budgets", protected(http.HandlerFunc(fh.GetBudgets)))
	protectedRoutes.Handle("PUT /api/protected/budgets", protected(http.HandlerFunc(fh.SetBudget)))
	protectedRoutes.Handle("DELETE /api/protected/budgets/{category}", protected(http.HandlerFunc(fh.DeleteBudget)))

	// GOALS API
	protectedRoutes.Handle("GET /api/protected/goals", protected(http.HandlerFunc(fh.GetGoals)))
	protectedRoutes.Handle("POST /api/protected/goals", protected(http.HandlerFunc(fh.CreateGoal)))
	protectedRoutes.Handle("GET /api/protected/goals/summary", protected(http.HandlerFunc(fh.GetGoalsSummary)))
	protectedRoutes.Handle("GET /api/protected/goals/{goalID}", withParam(fh.GetGoal, "goalID"))
	protectedRoutes.Handle("DELETE /api/protected/goals/{goalID}", withParam(fh.DeleteGoal, "goalID"))
	protectedRoutes.Handle("PUT /api/protected/goals/{goalID}/buckets", withParam(fh.SetGoalBuckets, "goalID"))
	protectedRoutes.Handle("GET /api/protected/goal_categories", protected(http.HandlerFunc(fh.GetGoalCategories)))

	// HEALTH & TIPS
	protectedRoutes.Handle("GET /api/protected/health-score", protected(http.HandlerFunc(fh.GetHealthScore)))
	protectedRoutes.Handle("GET /api/protected/tips", protected(http.HandlerFunc(fh.GetTip)))

	// Refresh token routes
	refreshTokenRoutes := http.NewServeMux()
	refreshTokenRoutes.Handle("PUT /api/refresh/token", s.authService.JWTRefreshTokenMiddleware()(http.HandlerFunc(s.authHandler.RefreshAccessToken)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/api/refresh/", refreshTokenRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

// Handler wraps the router with CORS and request logging.
func (s *Server) Handler(logger *slog.Logger, allowedOrigins []string) http.Handler {
	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	return logging.Middleware(logger)(corsMiddleware(s.router))
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Missing configuration, update to start server", logging.FieldError, err)
		os.Exit(1)
	}

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	logger := logging.New(level, os.Stdout)
	slog.SetDefault(logger)
	appLogger := logging.Component(logger, logging.ComponentApp)

	dbService, err := database.NewDBService(context.Background(), cfg, logger)
	if err != nil {
		appLogger.Error("Could not initialize database", logging.FieldError, err)
		os.Exit(1)
	}
	defer func() {
		if err := dbService.Close(); err != nil {
			appLogger.Error("Could not close database", logging.FieldError, err)
		}
	}()

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo, cfg.BcryptCost)
	userHandler := user.NewHandler(userService)

	twoFactorRepo := auth.NewTwoFactorRepository(dbService.DB)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authenticator := auth.NewAuthenticator(cfg.TOTPIssuer)
	authService := auth.NewAuthService(twoFactorRepo, userService, jwtManager, authenticator)
	authHandler := auth.NewHandler(authService, cfg.RefreshTokenTTL)

	bucketRepo := infrastructure.NewBucketRepository(dbService.DB)
	expenseRepo := infrastructure.NewExpenseRepository(dbService.DB)
	budgetRepo := infrastructure.NewBudgetRepository(dbService.DB)
	goalRepo := infrastructure.NewGoalRepository(dbService.DB)

	financeHandler := interfaces.NewFinanceHandler(
		application.NewBucketService(bucketRepo),
		application.NewExpenseService(expenseRepo, budgetRepo),
		application.NewBudgetService(budgetRepo),
		application.NewGoalService(goalRepo),
		application.NewHealthService(bucketRepo, expenseRepo, budgetRepo),
		tips.NewPicker(),
		respondJSON,
		respondError,
	)

	server := NewServer(authHandler, authService, userHandler, financeHandler, dbService)
	server.RegisterRoutes()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Handler(logger, cfg.CORSAllowedOrigins),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		appLogger.Error("Server failed to start", logging.FieldError, err)
		os.Exit(1)
	}

	appLogger.Info("Server starting", "port", cfg.Port)
	if err := serve(ctx, srv, ln, appLogger); err != nil {
		appLogger.Error("Server failed", logging.FieldError, err)
		os.Exit(1)
	}
	appLogger.Info("Server stopped gracefully")
}

// serve runs srv on ln until ctx is done. It returns only after Shutdown
// has drained in-flight requests.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, logger *slog.Logger) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", logging.FieldError, err)
		}
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}
