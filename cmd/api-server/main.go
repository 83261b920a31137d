package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"portfoliohub/internal/ai"
	"portfoliohub/internal/analytics"
	"portfoliohub/internal/auth"
	"portfoliohub/internal/blog"
	"portfoliohub/internal/export"
	"portfoliohub/internal/notify"
	"portfoliohub/internal/portfolio"
	"portfoliohub/internal/preview"
	"portfoliohub/internal/project"
	"portfoliohub/internal/render"
	"portfoliohub/internal/seo"
	"portfoliohub/pkg/database"
	"portfoliohub/pkg/utils"
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	srvCfg := utils.LoadServerConfig()
	if err := os.MkdirAll(srvCfg.MediaDir, 0o755); err != nil {
		log.Fatalf("media dir: %v", err)
	}
	if err := os.MkdirAll(srvCfg.ExportDir, 0o755); err != nil {
		log.Fatalf("export dir: %v", err)
	}

	router := gin.Default()

	// Optional: avoid “trusted all proxies” warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Start TCP preview first (so you notice binding errors early)
	hub := preview.NewHub()
	router.GET("/ws", preview.WSHandler(hub))
	tcpSrv := preview.NewServer(srvCfg.PreviewAddr, hub)

	registry := notify.NewRegistry()
	notifySrv := notify.NewServer(srvCfg.NotifyAddr, registry, nil)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"db_error":    err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	router.GET("/debug", func(c *gin.Context) {
		stats := hub.Stats()
		c.JSON(http.StatusOK, gin.H{
			"db":          dbCfg.Path,
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	router.Static("/media", srvCfg.MediaDir)

	// Auth
	authCfg := utils.LoadAuthConfig()
	tokenSvc := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	authRepo := auth.NewRepo(db)
	authHandler := auth.NewHandler(authRepo, tokenSvc)
	authHandler.RegisterRoutes(router.Group("/auth"))

	// Repos
	portfolioRepo := portfolio.NewRepo(db)
	projectRepo := project.NewRepo(db)
	blogRepo := blog.NewRepo(db)
	analyticsRepo := analytics.NewRepo(db)
	exportRepo := export.NewRepo(db)

	renderer := &render.Renderer{TrackURL: "/track/click"}
	portfolioHandler := portfolio.NewHandler(portfolioRepo, hub, renderer, projectRepo, blogRepo, analyticsRepo, srvCfg.MediaDir)
	projectHandler := project.NewHandler(projectRepo)
	blogHandler := blog.NewHandler(blogRepo)
	analyticsHandler := analytics.NewHandler(analyticsRepo)
	seoHandler := seo.NewHandler(portfolioRepo)

	aiCfg := utils.LoadAIConfig()
	var generator ai.Generator = ai.Fallback{}
	if aiCfg.APIKey != "" {
		gem, err := ai.NewGemini(aiCfg.APIKey, aiCfg.Model)
		if err != nil {
			log.Printf("genai client unavailable, using placeholder content: %v", err)
		} else {
			generator = gem
		}
	}
	aiHandler := ai.NewHandler(generator, portfolioRepo)

	exportHandler := export.NewHandler(exportRepo, portfolioRepo)
	worker := export.NewWorker(exportRepo, portfolioHandler, hub, notifySrv, srvCfg.ExportDir)

	// Public routes
	portfolioHandler.RegisterPublicRoutes(router.Group("/"))
	analyticsHandler.RegisterTrackRoutes(router.Group("/"))

	// Protected routes
	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware(tokenSvc, authRepo))

	portfolioHandler.RegisterRoutes(protected)
	projectHandler.RegisterRoutes(protected)
	blogHandler.RegisterRoutes(protected)
	analyticsHandler.RegisterRoutes(protected)
	seoHandler.RegisterRoutes(protected)
	aiHandler.RegisterRoutes(protected)
	exportHandler.RegisterRoutes(protected)

	httpSrv := &http.Server{
		Addr:    srvCfg.HTTPAddr,
		Handler: router,
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	errCh := make(chan error, 3)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := notifySrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(workerCtx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("HTTP API server listening on %s", srvCfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stopWorker()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := tcpSrv.Close(); err != nil {
		log.Printf("tcp shutdown error: %v", err)
	}
	if err := notifySrv.Close(); err != nil {
		log.Printf("udp shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("servers stopped")
}
