package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ajharbinger/receipt-processor/internal/auth"
	"github.com/ajharbinger/receipt-processor/pkg/config"
)

func main() {
	clientID := flag.String("client", "", "Client identifier embedded in the token")
	ttl := flag.Duration("ttl", auth.DefaultTokenTTL, "Token lifetime")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.New()

	if !cfg.AuthEnabled() {
		log.Fatal("JWT_SECRET is not set; the receipts API is not protected")
	}
	if *clientID == "" {
		fmt.Fprintln(os.Stderr, "Usage: issue-token -client <id> [-ttl 24h]")
		os.Exit(2)
	}

	token, expiresAt, err := auth.NewJWTService(cfg.JWTSecret).GenerateToken(*clientID, *ttl)
	if err != nil {
		log.Fatal("Failed to sign token:", err)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.UTC().Format(time.RFC3339))
}
