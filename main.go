package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/idalopban/ComVida/internal/admin"
	"github.com/idalopban/ComVida/internal/auth"
	"github.com/idalopban/ComVida/internal/cache"
	"github.com/idalopban/ComVida/internal/calc/batch"
	"github.com/idalopban/ComVida/internal/calc/bmi"
	"github.com/idalopban/ComVida/internal/calc/density"
	"github.com/idalopban/ComVida/internal/calc/energy"
	"github.com/idalopban/ComVida/internal/calc/fivecomp"
	"github.com/idalopban/ComVida/internal/calc/macros"
	"github.com/idalopban/ComVida/internal/calc/report"
	"github.com/idalopban/ComVida/internal/calc/somatotype"
	"github.com/idalopban/ComVida/internal/calc/twocomp"
	"github.com/idalopban/ComVida/internal/config"
	"github.com/idalopban/ComVida/internal/food"
	"github.com/idalopban/ComVida/internal/logger"
	"github.com/idalopban/ComVida/internal/patient"
	"github.com/idalopban/ComVida/internal/repo"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// connectCache returns nil when Redis is not configured or unreachable; food
// search then goes straight to the database.
func connectCache(ctx context.Context, cfg *config.Config, log *zap.Logger) (cache.KVStore, *redis.Client) {
	if cfg.Redis.Addr == "" {
		log.Info("redis not configured, food cache disabled")
		return nil, nil
	}
	client := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable, food cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		client.Close()
		return nil, nil
	}
	return cache.NewRedisKVStore(client), client
}

func HandleList(mux *mux.Router, db *sql.DB, kv cache.KVStore, cfg *config.Config, log *zap.Logger) {
	userRepo := repo.NewPostgresUserDB(db)
	foodSvc := food.NewService(repo.NewPostgresFoodDB(db), kv, cfg.FoodCacheTTL, log)

	authEnv := &auth.Authenv{
		JWTkey:   []byte(cfg.TokenKey),
		Repo:     userRepo,
		Logger:   log,
		Insecure: cfg.HTTP.TLSDisabled,
	}
	adminH := &admin.Handler{Repo: userRepo, Logger: log}
	foodH := &food.Handler{Service: foodSvc, Logger: log}
	patientH := &patient.Handler{
		Service: patient.NewService(repo.NewPostgresPatientDB(db)),
		Foods:   foodSvc,
		Logger:  log,
	}

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/logout", authEnv.LogoutHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/me", authEnv.Me).Methods("GET")

	bmiH := &bmi.Handler{}
	energyH := &energy.Handler{}
	densityH := &density.Handler{}
	twocompH := &twocomp.Handler{}
	fivecompH := &fivecomp.Handler{}
	somatotypeH := &somatotype.Handler{}
	macrosH := &macros.Handler{}
	batchH := &batch.Handler{}
	reportH := &report.Handler{}

	secureApi.HandleFunc("/tools/bmi/calc", bmiH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/energy/calc", energyH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/density/calc", densityH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/twocomp/calc", twocompH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/fivecomp/calc", fivecompH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/somatotype/calc", somatotypeH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/macros/calc", macrosH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/batch/calc", batchH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/batch/import", batchH.Import).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")

	secureApi.HandleFunc("/foods", foodH.Search).Methods("GET")
	secureApi.HandleFunc("/foods/{code}", foodH.Get).Methods("GET")

	secureApi.HandleFunc("/patients", patientH.List).Methods("GET")
	secureApi.HandleFunc("/patients", patientH.Save).Methods("POST")
	secureApi.HandleFunc("/patients/{slug}", patientH.Get).Methods("GET")
	secureApi.HandleFunc("/patients/{slug}", patientH.Delete).Methods("DELETE")
	secureApi.HandleFunc("/patients/{slug}/measurements", patientH.Measurements).Methods("PUT")
	secureApi.HandleFunc("/patients/{slug}/diet", patientH.AddDietItem).Methods("POST")
	secureApi.HandleFunc("/patients/{slug}/diet", patientH.ClearDiet).Methods("DELETE")
	secureApi.HandleFunc("/patients/{slug}/diet/split", patientH.SetSplit).Methods("PUT")
	secureApi.HandleFunc("/patients/{slug}/diet/summary", patientH.DietSummary).Methods("GET")
	secureApi.HandleFunc("/patients/{slug}/diet/{item}", patientH.RemoveDietItem).Methods("DELETE")
	secureApi.HandleFunc("/patients/{slug}/export/diet", patientH.ExportDiet).Methods("GET")
	secureApi.HandleFunc("/patients/{slug}/export/evaluation", patientH.ExportEvaluation).Methods("GET")
	secureApi.HandleFunc("/patients/{slug}/report", patientH.Report).Methods("GET")

	adminApi := api.PathPrefix("/admin").Subrouter()
	adminApi.Use(authEnv.AuthMiddleware, auth.AdminOnly)
	adminApi.HandleFunc("/users", adminH.ListUsers).Methods("GET")
	adminApi.HandleFunc("/users", adminH.CreateUser).Methods("POST")
	adminApi.HandleFunc("/users/{login}", adminH.DeleteUser).Methods("DELETE")

	static := cfg.HTTP.StaticDir
	authFileServer := http.FileServer(http.Dir(filepath.Join(static, "auth")))
	mux.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
	mux.PathPrefix("/").
		Handler(http.FileServer(http.Dir(filepath.Join(static, "main"))))
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "comvida")
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	db, err := auth.InitDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()

	if err := repo.EnsureSchema(ctx, db); err != nil {
		log.Fatal("schema setup failed", zap.Error(err))
	}
	created, err := auth.EnsureDefaultAdmin(ctx, repo.NewPostgresUserDB(db), cfg.AdminPassword)
	if err != nil {
		log.Fatal("admin account setup failed", zap.Error(err))
	}
	if created {
		log.Warn("default admin account created, change its password", zap.String("login", auth.DefaultAdminLogin))
	}

	kv, redisClient := connectCache(ctx, cfg, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	mux := mux.NewRouter()
	HandleList(mux, db, kv, cfg, log)

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           CORS(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("starting server", zap.String("addr", cfg.HTTP.Addr), zap.Bool("tls", !cfg.HTTP.TLSDisabled))
		var err error
		if cfg.HTTP.TLSDisabled {
			err = server.ListenAndServe()
		} else {
			err = server.ListenAndServeTLS(cfg.HTTP.TLSCert, cfg.HTTP.TLSKey)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	wg.Wait()
	log.Info("server stopped")
}
