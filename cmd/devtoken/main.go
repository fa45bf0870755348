// devtoken prints a signed bearer token for local testing against a dev server.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/auth"
)

func main() {
	userID := flag.String("user", "", "user id, becomes the token subject")
	name := flag.String("name", "", "display name (optional)")
	issuer := flag.String("issuer", "", "token issuer (optional)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("LIFTLOG_JWT_SECRET")
	if secret == "" {
		log.Fatalln("jwt secret not set. use LIFTLOG_JWT_SECRET")
	}
	if *userID == "" {
		log.Fatalln("user id not specified, use -user")
	}

	token, err := auth.NewTokenChecker(secret, *issuer).Issue(auth.Identity{
		UserID:      *userID,
		DisplayName: *name,
	}, *ttl)
	if err != nil {
		log.Fatalf("issue token: %s", err)
	}

	fmt.Println(token)
}
