// Command devtoken mints a bearer token for local development, signed with
// JWT_SECRET. In deployed environments tokens come from the identity service.
//
//	go run ./cmd/devtoken -username john
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/issuechat/internal/auth"
	"github.com/lalith-99/issuechat/internal/config"
)

func main() {
	username := flag.String("username", "dev", "username claim")
	userID := flag.String("user-id", "", "user_id claim (random when empty)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if err := run(*username, *userID, *ttl); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(username, rawID string, ttl time.Duration) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	id := uuid.New()
	if rawID != "" {
		if id, err = uuid.Parse(rawID); err != nil {
			return fmt.Errorf("parse user-id: %w", err)
		}
	}

	token, err := auth.GenerateToken(id, username, cfg.JWTSecret, ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
