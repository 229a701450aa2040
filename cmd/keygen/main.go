package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"ledger-chain.backend/internal/infrastructure/signing"
)

var (
	generateKey           = signing.GenerateKey
	out         io.Writer = os.Stdout
)

func run() error {
	key, address, err := generateKey()
	if err != nil {
		return fmt.Errorf("failed to generate signing key: %w", err)
	}

	_, _ = fmt.Fprintln(out, "Generated ledger signing key")
	_, _ = fmt.Fprintf(out, "LEDGER_SIGNING_KEY=%s\n", key)
	_, _ = fmt.Fprintf(out, "SIGNER_ADDRESS=%s\n", address)
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
