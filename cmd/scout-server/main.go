package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"footscout/internal/cache"
	"footscout/internal/config"
	"footscout/internal/derive"
	"footscout/internal/handlers"
	"footscout/internal/metrics"
	"footscout/internal/store"
)

func main() {
	cfg := config.Load()

	var (
		addr        = flag.String("addr", cfg.Server.Addr, "HTTP listen address")
		datasetPath = flag.String("dataset", cfg.Dataset.CSVPath, "path to the player dataset CSV")
		derivedRoot = flag.String("derived-root", cfg.Dataset.DerivedRoot, "root directory for derived JSON artifacts")
	)
	flag.Parse()

	players, err := store.LoadCSV(*datasetPath)
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}
	if len(players) == 0 {
		log.Fatalf("dataset %s has no player rows", *datasetPath)
	}

	table, err := derive.LoadOrBuild(store.NewJSONStore(*derivedRoot), players)
	if err != nil {
		log.Fatalf("build scaled table: %v", err)
	}

	byLeague := make(map[string]int)
	for _, p := range players {
		byLeague[p.League]++
	}
	metrics.SetPlayersLoaded(byLeague)

	var resultCache *cache.ResultCache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis unavailable, caching disabled: %v", err)
		} else {
			resultCache = cache.New(client, time.Duration(cfg.Redis.TTLHours)*time.Hour)
		}
	}

	handler := handlers.NewHandler(table, resultCache)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", handler.HealthCheck)
	r.Handle("/metrics", metrics.Handler())
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/features", handler.ListFeatures)
		r.Get("/leagues", handler.ListLeagues)
		r.Get("/players", handler.SearchPlayers)
		r.Post("/rankings", handler.Rankings)
		r.Post("/compare", handler.Compare)
		r.Post("/compare/chart.png", handler.CompareChartPNG)
	})

	server := &http.Server{
		Addr:         *addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("scout-server listening on %s (%d players, %d leagues)", *addr, len(players), len(byLeague))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("server error: %v", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
		os.Exit(1)
	}
}
