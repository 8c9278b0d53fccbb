package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"codeberg.org/sbomhub/server/internal/auth"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// mints a session token for local testing of the bearer-guarded API
func main() {
	email := flag.String("email", "test@sbomhub.dev", "email claim")
	name := flag.String("name", "Test User", "name claim")
	subject := flag.String("sub", "", "subject claim (random when empty)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	// load environment
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	if *subject == "" {
		*subject = "test-" + uuid.NewString()
	}

	codec, err := auth.NewCodec(secret, *ttl)
	if err != nil {
		log.Fatalf("Failed to create token codec: %v", err)
	}

	token, err := codec.Issue(auth.Identity{
		UserID: *subject,
		Email:  *email,
		Name:   *name,
	})
	if err != nil {
		log.Fatalf("Failed to generate JWT: %v", err)
	}

	fmt.Printf("\nTest JWT Token (sub %s, expires in %s):\n%s\n\n", *subject, *ttl, token)
	fmt.Printf("Export this token for testing:\nexport TEST_TOKEN=\"%s\"\n", token)
}
