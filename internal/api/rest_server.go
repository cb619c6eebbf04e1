package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/annel0/blockverse/internal/game"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/middleware"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/tile"
)

// RestServer предоставляет HTTP API для наблюдения за миром:
// здоровье сервера, статистика, чтение тайлов и состояние игрока.
// Запись через REST не поддерживается, изменения мира идут через сессию.
type RestServer struct {
	router  *gin.Engine
	server  *http.Server
	session *game.Session
	logger  *logging.Logger
	started time.Time
}

// NewRestServer настраивает маршруты и middleware поверх игровой сессии.
func NewRestServer(session *game.Session, port int) *RestServer {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	prom := middleware.NewPrometheusMiddleware("blockverse")
	router.Use(prom.Handler())
	prom.RegisterMetricsEndpoint(router)

	rs := &RestServer{
		router:  router,
		session: session,
		logger:  logging.GetComponentLogger("api"),
		started: time.Now(),
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
	}

	rs.setupRoutes()
	return rs
}

func (rs *RestServer) setupRoutes() {
	// CORS для локальных клиентов и инструментов.
	rs.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Trace-Id")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	rs.router.GET("/health", rs.handleHealth)

	api := rs.router.Group("/api/v1")
	{
		api.GET("/world/stats", rs.handleWorldStats)
		api.GET("/world/tile", rs.handleTile)
		api.GET("/world/chunk", rs.handleChunk)
		api.GET("/player", rs.handlePlayer)
		api.GET("/player/inventory", rs.handleInventory)
	}
}

func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(rs.started).String(),
	})
}

func (rs *RestServer) handleWorldStats(c *gin.Context) {
	w := rs.session.World()
	c.JSON(http.StatusOK, gin.H{
		"seed":            w.Seed(),
		"chunks_resident": w.Store().Count(),
		"chunks_modified": len(w.ModifiedChunks()),
	})
}

// handleTile возвращает тайл по мировым координатам: /world/tile?x=..&y=..
func (rs *RestServer) handleTile(c *gin.Context) {
	pos, ok := parseCoords(c)
	if !ok {
		return
	}

	w := rs.session.World()
	id := w.GetTile(pos)
	c.JSON(http.StatusOK, gin.H{
		"x":     pos.X,
		"y":     pos.Y,
		"tile":  tile.Name(id),
		"solid": w.IsSolid(pos),
	})
}

// handleChunk возвращает весь чанк по координатам чанка: /world/chunk?cx=..&cy=..
func (rs *RestServer) handleChunk(c *gin.Context) {
	cx, err1 := strconv.Atoi(c.Query("cx"))
	cy, err2 := strconv.Atoi(c.Query("cy"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "параметры cx и cy обязательны"})
		return
	}

	coords := vec.Vec2{X: cx, Y: cy}
	ch := rs.session.World().Store().Ensure(coords)
	c.JSON(http.StatusOK, gin.H{
		"cx":    cx,
		"cy":    cy,
		"tiles": ch.Grid(),
	})
}

func (rs *RestServer) handlePlayer(c *gin.Context) {
	p := rs.session.Player()
	c.JSON(http.StatusOK, gin.H{
		"x":        p.Pos.X,
		"y":        p.Pos.Y,
		"vx":       p.Vel.X,
		"vy":       p.Vel.Y,
		"grounded": p.Grounded,
	})
}

func (rs *RestServer) handleInventory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items": rs.session.Inventory().All(),
	})
}

func parseCoords(c *gin.Context) (vec.Vec2, bool) {
	x, err1 := strconv.Atoi(c.Query("x"))
	y, err2 := strconv.Atoi(c.Query("y"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "параметры x и y обязательны"})
		return vec.Vec2{}, false
	}
	return vec.Vec2{X: x, Y: y}, true
}

// Start запускает HTTP-сервер в отдельной горутине.
func (rs *RestServer) Start() {
	go func() {
		rs.logger.Info("REST API слушает %s", rs.server.Addr)
		if err := rs.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			rs.logger.Error("Ошибка REST-сервера: %v", err)
		}
	}()
}

// Stop останавливает сервер с таймаутом на дообработку запросов.
func (rs *RestServer) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return rs.server.Shutdown(shutdownCtx)
}
