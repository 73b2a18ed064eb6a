package server

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sapessi/nearly-divisionless-rand/src/api"
	"github.com/sapessi/nearly-divisionless-rand/src/rng"
)

type Server struct {
	port   string
	router *gin.Engine
}

func New(port string, r io.Reader, h *rng.Health, log *zap.SugaredLogger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	// Background health monitoring (best-effort)
	// Interval is configurable via RNG_HEALTH_INTERVAL (default 10000ms).
	interval := 10_000 * time.Millisecond
	if msStr := os.Getenv("RNG_HEALTH_INTERVAL"); msStr != "" {
		if ms, err := strconv.Atoi(msStr); err == nil && ms > 0 {
			interval = time.Duration(ms) * time.Millisecond
		}
	}
	go rng.PeriodicHealthCheck(r, h, interval)

	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"X-API-KEY", "Accept"},
		AllowAllOrigins:  true,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(RateLimit(NewLimiter(rateFromEnv())))
	router.Use(api.CheckHeader("X-API-KEY", api.APIKeyFromEnv()))

	handlers := api.NewHandlers(r, h, log)
	router.GET("/", handlers.RandomNumber)
	router.GET("/uint64", handlers.BoundedUint64)
	router.GET("/bytes", handlers.RandomBytes)
	router.GET("/strings", handlers.RandomStrings)
	router.GET("/health", handlers.Health)

	return &Server{port: port, router: router}
}

// rateFromEnv reads RATE_LIMIT_RPS / RATE_LIMIT_BURST (defaults 50/100).
func rateFromEnv() (rps int, burst int) {
	rps, burst = 50, 100
	if s := os.Getenv("RATE_LIMIT_RPS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			rps = v
		}
	}
	if s := os.Getenv("RATE_LIMIT_BURST"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			burst = v
		}
	}
	return rps, burst
}

func (s *Server) RunOrDie() {
	if err := s.router.Run(":" + s.port); err != nil {
		panic(err)
	}
}
