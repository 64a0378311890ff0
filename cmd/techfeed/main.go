package main

import (
	"fmt"
	"os"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "init":
		err = runInit(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "api":
		err = runAPI(os.Args[2:])
	case "seed":
		err = runSeed(os.Args[2:])
	case "preview":
		err = runPreview(os.Args[2:])
	case "version":
		fmt.Printf("techfeed %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`techfeed - A technical article feed built with Go, Echo, and templ

Usage:
  techfeed <command> [-config file] [arguments]

Commands:
  init [dir]      Write a starter config, seed file and .env.example
  serve           Serve the feed page
  api             Serve the articles API from SQLite or Postgres
  seed <file>     Replace the stored articles with a JSON or YAML file
  preview         Show the feed in the terminal
  version         Print the techfeed version
  help            Show this help message

Configuration is read from -config (or TECHFEED_CONFIG), a .yaml or .toml
file, and overridden by environment variables such as SITE_URL,
ARTICLES_ENDPOINT and DATABASE_URL.

Examples:
  techfeed init dev-notes
  techfeed api
  techfeed seed articles.yaml
  techfeed serve -config techfeed.toml
  ARTICLES_ENDPOINT=https://api.example.com/articles techfeed preview`)
}
