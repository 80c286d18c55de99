// Command mktoken prints a bearer token accepted by POST /api/chat when
// AUTH_JWT_SECRET is set.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/fedutinova/careerchat/internal/auth"
	appconfig "github.com/fedutinova/careerchat/internal/config"
)

func main() {
	cfg := appconfig.Load()

	subject := flag.String("sub", "web", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is not set")
	}

	tok, err := auth.NewToken(cfg.JWTSecret, cfg.JWTIssuer, *subject, *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(tok)
}
