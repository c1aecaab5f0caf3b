// Package main generates the bcrypt hash for the admin token. The
// output goes into GATEKEEPER_ADMIN_TOKEN_HASH; the plain token is
// what operators send in X-Admin-Token.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	token := flag.Arg(0)
	if token == "" {
		fmt.Fprintln(os.Stderr, "usage: hashgen [-cost N] <token>")
		os.Exit(1)
	}
	if len(token) < 16 {
		fmt.Fprintln(os.Stderr, "refusing to hash a token shorter than 16 characters")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(token), *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(hash))
}
