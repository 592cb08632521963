// Command webgated runs a demonstration front server for the request gate.
//
// It loads its configuration from WEBGATE_* environment variables (a .env
// file in the working directory is honored), guards every page route with
// the gate, and exposes the token-minting API alongside a Prometheus
// metrics endpoint.
//
// Endpoints:
//
//	POST /api/auth/login    — JSON {"email":"...", "password":"..."}
//	POST /api/auth/refresh  — JSON {"refresh_token":"..."}
//	POST /api/auth/logout   — clears the session cookie
//	GET  /metrics           — Prometheus exposition
//	GET  /*                 — gated page stub
//
// The credential check is an in-memory stub seeded with a single account
// (ada@example.com / correct-horse); a real deployment replaces it with its
// identity backend and keeps everything else.
//
// Run:
//
//	WEBGATE_SESSION_SECRET=dev-session \
//	WEBGATE_REFRESH_SECRET=dev-refresh \
//	go run ./cmd/webgated
package main

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	webgate "github.com/veltrabank/webgate"
	wgprom "github.com/veltrabank/webgate/metrics/export/prometheus"
	"github.com/veltrabank/webgate/middleware"
	"github.com/veltrabank/webgate/token"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := webgate.ConfigFromEnv()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	builder := webgate.New().WithConfig(cfg).WithLogger(logger)

	if addr := os.Getenv("WEBGATE_REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		defer func() { _ = rdb.Close() }()
		builder = builder.WithRedis(rdb)
		logger.Info("rate limiter enabled", zap.String("redis", addr))
	}

	engine, err := builder.Build()
	if err != nil {
		logger.Fatal("engine build", zap.Error(err))
	}

	accounts := seedAccounts()

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", loginHandler(engine, accounts, logger))
		r.Post("/refresh", refreshHandler(engine))
		r.Post("/logout", logoutHandler(engine))
	})

	r.Method(http.MethodGet, "/metrics", wgprom.NewExporter(engine).Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Guard(engine))
		r.Get("/*", pageHandler)
	})

	addr := os.Getenv("WEBGATE_LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	logger.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}

// account is the demo stand-in for the identity backend. Passwords are
// plaintext here because the stub exists only to exercise the gate.
type account struct {
	password string
	claims   token.Claims
}

func seedAccounts() map[string]account {
	return map[string]account{
		"ada@example.com": {
			password: "correct-horse",
			claims: token.Claims{
				ID:    "user-1",
				Email: "ada@example.com",
				Name:  "Ada",
				Role:  token.RoleUser,
			},
		},
	}
}

func loginHandler(engine *webgate.Engine, accounts map[string]account, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		ctx := webgate.WithClientIP(r.Context(), r.RemoteAddr)

		if err := engine.CheckLogin(ctx, body.Email); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, webgate.ErrLoginRateLimited) {
				status = http.StatusTooManyRequests
			}
			http.Error(w, err.Error(), status)
			return
		}

		acct, ok := accounts[body.Email]
		if !ok || subtle.ConstantTimeCompare([]byte(acct.password), []byte(body.Password)) != 1 {
			_ = engine.RecordLoginFailure(ctx, body.Email)
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		res, err := engine.Login(ctx, acct.claims)
		if err != nil {
			if errors.Is(err, webgate.ErrLoginRateLimited) {
				http.Error(w, err.Error(), http.StatusTooManyRequests)
				return
			}
			logger.Error("login", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		engine.WriteSessionCookie(w, res.SessionToken)
		writeJSON(w, http.StatusOK, map[string]string{"refresh_token": res.RefreshToken})
	}
}

func refreshHandler(engine *webgate.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		sessionToken, err := engine.Refresh(r.Context(), body.RefreshToken)
		if err != nil {
			switch {
			case errors.Is(err, webgate.ErrRefreshRateLimited):
				http.Error(w, err.Error(), http.StatusTooManyRequests)
			case errors.Is(err, webgate.ErrRefreshInvalid):
				http.Error(w, err.Error(), http.StatusUnauthorized)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		engine.WriteSessionCookie(w, sessionToken)
		w.WriteHeader(http.StatusNoContent)
	}
}

func logoutHandler(engine *webgate.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine.Logout(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

func pageHandler(w http.ResponseWriter, r *http.Request) {
	payload := map[string]string{"page": r.URL.Path}
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		payload["user_id"] = claims.ID
		payload["name"] = claims.Name
	}
	writeJSON(w, http.StatusOK, payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
