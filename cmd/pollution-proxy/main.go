package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/cityair/pollution-proxy/pkg/auth"
	"github.com/cityair/pollution-proxy/pkg/cache"
	"github.com/cityair/pollution-proxy/pkg/cities"
	"github.com/cityair/pollution-proxy/pkg/client"
	"github.com/cityair/pollution-proxy/pkg/describe"
	"github.com/cityair/pollution-proxy/pkg/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: false,
		Output: os.Stderr,
	})

	// Configuration from environment
	apiBase := os.Getenv("API_BASE_URL")
	username := os.Getenv("API_USERNAME")
	password := os.Getenv("API_PASSWORD")
	redisURL := getEnv("REDIS_URL", "localhost:6379")
	port := getEnv("PORT", "8080")
	descriptionBase := getEnv("DESCRIPTION_BASE_URL", describe.DefaultBaseURL)

	if apiBase == "" || username == "" || password == "" {
		logger.Fatal().Msg("API_BASE_URL, API_USERNAME and API_PASSWORD are required")
	}

	// Setup Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Str("redis", redisURL).Msg("Failed to connect to Redis")
	}
	logger.Info().Str("redis", redisURL).Msg("Connected to Redis")

	// Wire up the city query service
	api, err := client.New(client.DefaultConfig(apiBase, username, password))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create upstream client")
	}

	service, err := cities.NewService(cities.Config{
		API:      api,
		Auth:     auth.NewOrchestrator(api),
		Cache:    cache.NewStore(redisClient),
		Pipeline: cities.NewPipeline(describe.NewClient(api, descriptionBase)),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create city service")
	}

	// HTTP Server
	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/cities", citiesHandler(service))
	http.Handle("/metrics", promhttp.Handler())

	addr := ":" + port
	logger.Info().Str("addr", addr).Msg("Starting pollution proxy server")

	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

// citiesHandler translates raw query parameters for the city service and
// its typed errors back into transport responses.
func citiesHandler(service *cities.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		country := r.URL.Query().Get("country")

		page, err := queryInt(r, "page", 1)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		limit, err := queryInt(r, "limit", 10)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		result, err := service.GetCities(ctx, country, page, limit)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			// Headers are already sent; nothing left to do but log.
			logger := logging.NewLogger("http")
			logger.Warn().Err(err).Msg("Failed to write response")
		}
	}
}

// queryInt parses a positive integer query parameter, falling back to a
// default when absent.
func queryInt(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}

	return value, nil
}

// writeError maps core error kinds to transport status codes: invalid
// input is the caller's fault, everything else is an upstream problem.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, cities.ErrInvalidCountry) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Error(w, fmt.Sprintf("upstream request failed: %v", err), http.StatusBadGateway)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
