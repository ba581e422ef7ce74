package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashveil/oathsandashes/internal/config"
	"github.com/ashveil/oathsandashes/internal/handlers/discord"
	"github.com/ashveil/oathsandashes/internal/repositories/stats"
	"github.com/ashveil/oathsandashes/internal/services/narration"
	sessionService "github.com/ashveil/oathsandashes/internal/services/session"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize the stats repository
	statsRepo, err := stats.NewRedis(&stats.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create stats repository: %v", err)
	}

	// Initialize the narration service
	narrator, err := narration.NewService(&narration.ServiceConfig{})
	if err != nil {
		log.Fatalf("Failed to create narration service: %v", err)
	}

	// Initialize the Discord bot; it is the session service's transport
	bot, err := discord.New(&discord.Config{
		Token:         cfg.DiscordToken,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		Narrator:      narrator,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Initialize the session service
	sessionSvc, err := sessionService.New(&sessionService.Config{
		Transport: bot,
		StatsRepo: statsRepo,
		Narrator:  narrator,
	})
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}

	bot.BindSessionService(sessionSvc)

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	log.Println("Bot has been shut down")
}
