// Command sigscan searches files for IDA-style byte signatures.
package main

import (
	"errors"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		if !errors.Is(err, errNoMatch) {
			logger.Error("sigscan failed", "error", err)
		}
		os.Exit(1)
	}
}
