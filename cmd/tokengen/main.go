package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"summercamp-backend/jwt"
)

func main() {
	s := flag.String("secret", os.Getenv("JWT_SECRET_ACCESS_TOKEN"), "Key used to sign access tokens")
	email := flag.String("email", "", "Email claim of the token")
	name := flag.String("name", "", "Optional name claim")
	e := flag.String("exp", time.Now().Add(jwt.DefaultTTL).Format(time.RFC3339), "RFC3339 time of the expiration date")
	flag.Parse()

	if *s == "" {
		fmt.Println("--secret is required")
		os.Exit(1)
	}

	if *email == "" {
		fmt.Println("--email is required")
		os.Exit(1)
	}

	exp, err := time.Parse(time.RFC3339, *e)
	if err != nil {
		fmt.Println("--exp invalid time")
		os.Exit(1)
	}

	ss, err := jwt.New([]byte(*s), 0).GenerateToken(*email, *name, exp)
	if err != nil {
		fmt.Println("Signing failure:", err)
		os.Exit(1)
	}

	fmt.Println("Token successfully generated:", ss)
}
