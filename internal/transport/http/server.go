package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirecall-server/internal/config"
	"github.com/vovakirdan/wirecall-server/internal/core"
	"github.com/vovakirdan/wirecall-server/internal/metrics"
)

// NewServer builds the HTTP server: health, WebSocket relay, room stats,
// metrics and, in production, the client bundle.
func NewServer(hub *core.Hub, m *metrics.Metrics, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.AllowedOrigin))

	router.GET("/health", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, cfg, logger)))

	rooms := NewRoomHandlers(hub, logger)
	router.GET("/api/rooms", rooms.ListRooms)

	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	if cfg.Production() && cfg.StaticDir != "" {
		router.NoRoute(StaticHandler(cfg.StaticDir))
	}

	return &stdhttp.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
