package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/eringen/aforo"
	"github.com/eringen/aforo/source"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	// A missing .env is fine; the environment and config file still apply.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "import":
		err = runImport(os.Args[2:])
	case "version":
		fmt.Printf("aforo %s\n", version)
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

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", aforo.EnvOr("AFORO_CONFIG", ""), "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := aforo.Load(*configPath)
	if err != nil {
		return err
	}
	app, err := aforo.New(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigChan:
		log.Println("Shutdown signal received, stopping server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dbPath := fs.String("db", "data/snapshots.db", "SQLite database to import into")
	statsPath := fs.String("stats", "data/stats.json", "Snapshot JSON file or URL to read")
	timeout := fs.Duration("timeout", 30*time.Second, "Timeout for remote reads")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	batches, err := source.NewLoader(*timeout).Batches(ctx, *statsPath)
	if err != nil {
		return err
	}
	store, err := source.OpenSQLite(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Import(ctx, batches)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d of %d batches into %s (%d stored)\n", n, len(batches), *dbPath, total)
	return nil
}

func printUsage() {
	fmt.Println(`aforo - venue occupancy dashboard

Usage:
  aforo <command> [arguments]

Commands:
  serve [-config path]            Load the data and serve the dashboard
  import -db path -stats path     Copy a stats JSON file into a SQLite database
  version                         Print the aforo version
  help                            Show this help message

Configuration is read from the optional YAML file and AFORO_* environment
variables (for example AFORO_DATA_STATS=sqlite://data/snapshots.db).
A .env file in the working directory is loaded first.`)
}
