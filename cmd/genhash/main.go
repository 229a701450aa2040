package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"ledger-chain.backend/pkg/crypto"
)

const serviceKeyBytes = 24

var (
	hashFn              = crypto.HashSecret
	randomKey           = func() (string, error) { return crypto.GenerateRandomHex(serviceKeyBytes) }
	fatalfFn            = log.Fatalf
	out       io.Writer = os.Stdout
)

// resolveKey returns the key given on the command line or a fresh one
func resolveKey(args []string) (string, bool, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], false, nil
	}
	key, err := randomKey()
	return key, true, err
}

func run(args []string) error {
	fs := flag.NewFlagSet("genhash", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return err
	}

	key, generated, err := resolveKey(fs.Args())
	if err != nil {
		return fmt.Errorf("failed to generate service key: %w", err)
	}
	hash, err := hashFn(key)
	if err != nil {
		return fmt.Errorf("failed to hash service key: %w", err)
	}

	if generated {
		_, _ = fmt.Fprintln(out, "Generated a new service key; give it to the booking service")
	}
	_, _ = fmt.Fprintf(out, "LEDGER_SERVICE_KEY=%s\n", key)
	_, _ = fmt.Fprintf(out, "SERVICE_KEY_HASH=%s\n", hash)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fatalfFn("%v", err)
	}
}
