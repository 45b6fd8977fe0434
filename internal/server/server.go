package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akwamin-eng/asta-engine/internal/config"
	"github.com/akwamin-eng/asta-engine/internal/core"
	"github.com/akwamin-eng/asta-engine/internal/core/model"
	"github.com/akwamin-eng/asta-engine/internal/core/votes"
	"github.com/akwamin-eng/asta-engine/internal/geocode"
	"github.com/akwamin-eng/asta-engine/internal/llm"
	"github.com/akwamin-eng/asta-engine/internal/store"
)

type Server struct {
	Engine         *core.Engine
	AllowedOrigins []string
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults + env", cfgPath, err)
		cfg = &config.Config{}
		cfg.ApplyDefaults()
	}
	applyEnvOverrides(cfg)

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "gemini"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gemini-2.0-flash"
	}
	if len(cfg.LLM.FallbackModels) == 0 {
		cfg.LLM.FallbackModels = []string{"gemini-1.5-flash"}
	}

	chain, err := llm.BuildChain(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize model chain: %v", err)
	}
	log.Printf("Model chain: %v", chain.Models())

	st, err := store.NewPostgresStore(cfg.Store.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to store: %v", err)
	}

	var geocoder geocode.Geocoder
	if cfg.Geocode.APIKey != "" {
		geocoder = geocode.NewClient(cfg.Geocode)
	} else {
		log.Println("No geocoding key configured, enrichment disabled")
	}

	return &Server{
		Engine:         core.NewEngine(st, chain, geocoder, cfg),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
}

func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_FALLBACK_MODELS"); v != "" {
		cfg.LLM.FallbackModels = splitList(v)
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("GEOCODE_API_KEY"); v != "" {
		cfg.Geocode.APIKey = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(s.cors())

	r.GET("/", s.Health)
	r.POST("/process", s.Process)
	r.POST("/webhook/whatsapp", s.WhatsApp)
	r.POST("/properties/:id/vote", s.Vote)
	r.GET("/trends", s.Trends)

	return r
}

func (s *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		for _, allowed := range s.AllowedOrigins {
			if allowed == "*" || allowed == origin {
				c.Header("Access-Control-Allow-Origin", allowed)
				c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Content-Type")
				break
			}
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Asta Engine Online", "brain": "resilient"})
}

type ProcessRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	rec, err := s.Engine.ProcessListing(c.Request.Context(), req.Text)
	switch {
	case errors.Is(err, core.ErrStoreFailure):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database Save Failed"})
		return
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI Extraction Failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": rec})
}

type VoteRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
	Kind     string `json:"kind" binding:"required"`
}

func (s *Server) Vote(c *gin.Context) {
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	outcome, err := s.Engine.Vote(c.Request.Context(), c.Param("id"), req.DeviceID, model.VoteKind(req.Kind))
	if err != nil {
		log.Printf("vote failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Vote failed"})
		return
	}

	switch outcome.Status {
	case votes.Recorded:
		c.JSON(http.StatusOK, outcome)
	case votes.Duplicate:
		c.JSON(http.StatusConflict, outcome)
	case votes.NotFound:
		c.JSON(http.StatusNotFound, outcome)
	case votes.InvalidKind:
		c.JSON(http.StatusBadRequest, outcome)
	}
}

func (s *Server) Trends(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	tags, err := s.Engine.TrendingTags(c.Request.Context(), limit)
	if err != nil {
		log.Printf("trends failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trends"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
