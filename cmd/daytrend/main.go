package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/janekbaraniewski/daytrend/internal/config"
)

func main() {
	if os.Getenv("DAYTREND_DEBUG") != "" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Config path: %s\n", config.ConfigPath())
		os.Exit(1)
	}

	if err := newRootCommand(newApp(cfg)).Execute(); err != nil {
		os.Exit(1)
	}
}
