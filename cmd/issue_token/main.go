package main

import (
	"flag"
	"fmt"
	"log"

	"wallet_backend/internal/service"
)

// Prints a signed JWT for local testing. Expects JWT_SECRET in the env.
func main() {
	userID := flag.Int64("user", 0, "user id to embed in the token")
	admin := flag.Bool("admin", false, "issue a token with the admin claim")
	flag.Parse()

	if *userID <= 0 {
		log.Fatal("-user is required and must be positive")
	}

	service.InitJWT()

	var (
		token string
		err   error
	)
	if *admin {
		token, err = service.GenerateAdminJWT(*userID)
	} else {
		token, err = service.GenerateJWT(*userID)
	}
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}

	fmt.Println(token)
}
