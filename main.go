package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"topcare/listingworker/config"
	"topcare/listingworker/internal/assembler"
	"topcare/listingworker/internal/client"
	"topcare/listingworker/internal/extractor"
	"topcare/listingworker/internal/fetcher"
	"topcare/listingworker/logger"
	"topcare/listingworker/services/blocklist"
	"topcare/listingworker/services/publisher"
	"topcare/listingworker/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if len(os.Args) < 2 {
		log.Fatal().Msg("Usage: listingworker <url-file>")
	}

	urls, err := readURLFile(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read URL file")
	}
	if len(urls) == 0 {
		log.Warn().Str("file", os.Args[1]).Msg("URL file contains no URLs, nothing to do")
		return
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("origin", cfg.OriginURL).
		Str("api", cfg.APIBaseURL).
		Int("url_count", len(urls)).
		Msg("Starting application")

	// Set up context cancelled on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize services
	services, err := initializeServices(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Cleanup()

	// Build the pipeline
	pageFetcher, err := fetcher.New(cfg.OriginURL, fetcher.Options{
		Timeout:   cfg.FetchTimeout,
		Attempts:  cfg.MaxAttempts,
		BlockTTL:  cfg.BlockTTL,
		Blocklist: services.Blocklist,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create fetcher")
	}

	draftAssembler := assembler.New(extractor.New(cfg.OriginURL, cfg.OriginName, cfg.CDNHint))

	submitter := client.New(cfg.APIBaseURL, client.AuthContext{
		Token:  cfg.AuthToken,
		Cookie: cfg.AuthCookie,
	}, cfg.FetchTimeout)

	w := worker.NewWorker(
		pageFetcher,
		draftAssembler,
		submitter,
		services.Publisher,
		cfg.MinDelay,
		cfg.MaxDelay,
	)

	result := w.Run(ctx, urls)

	log.Info().
		Int("success", result.Success).
		Int("failed", len(result.Failed)).
		Msg("Batch finished")
	for _, f := range result.Failed {
		log.Warn().Str("url", f.URL).Err(f.Err).Msg("URL failed")
	}

	if result.Success == 0 && len(result.Failed) > 0 {
		os.Exit(1)
	}
}

// Services holds all the initialized services
type Services struct {
	Blocklist blocklist.Store
	Publisher publisher.Publisher
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
}

// initializeServices initializes the blocklist backend and the optional
// created-listing stream publisher
func initializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	services := &Services{}

	if cfg.MemcacheAddr != "" {
		store := blocklist.NewMemcacheStore(cfg.MemcacheAddr)
		if store == nil {
			return nil, fmt.Errorf("failed to create memcache blocklist")
		}
		services.Blocklist = store
		logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
	} else {
		services.Blocklist = blocklist.NewMemoryStore()
	}

	if cfg.RedisAddr != "" {
		redisPublisher := publisher.NewRedisPublisher(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamMaxLen,
		)
		if redisPublisher == nil {
			return nil, fmt.Errorf("failed to create redis publisher")
		}
		services.Publisher = redisPublisher

		logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	return services, nil
}

// readURLFile reads one product URL per line, skipping blanks and comments
func readURLFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
