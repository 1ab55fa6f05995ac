package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/dashboard"
	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/foodapi"
	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	opts, err := parseOptions(flag.CommandLine, cfg, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if len(opts.args) == 0 {
		flag.CommandLine.Usage()
		os.Exit(2)
	}

	log := logger.New(opts.logLevel)
	slog.SetDefault(log)

	client, err := foodapi.New(opts.baseURL, foodapi.WithTimeout(time.Duration(cfg.Client.Timeout)*time.Second))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	view := dashboard.New(client, log)
	if err := load(ctx, view, opts.retries); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load foods: %v\n", err)
		os.Exit(1)
	}

	if err := run(ctx, view, opts.args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the global dashboard flags plus the command and its arguments
type options struct {
	baseURL  string
	retries  int
	logLevel string
	args     []string
}

// parseOptions parses the global flags; defaults come from the loaded configuration
func parseOptions(fs *flag.FlagSet, cfg *config.Config, args []string) (options, error) {
	var opts options
	fs.StringVar(&opts.baseURL, "api", cfg.Client.BaseURL, "Base URL of the food API")
	fs.IntVar(&opts.retries, "retries", 0, "Times to retry the initial load")
	fs.StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "Log level for dashboard diagnostics")

	fs.Usage = usage(fs)
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts.args = fs.Args()
	return opts, nil
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		out := fs.Output()
		fmt.Fprintf(out, "Food catalog dashboard\n\n")
		fmt.Fprintf(out, "Usage: %s [options] <command> [args]\n\n", fs.Name())
		fmt.Fprintf(out, "Commands:\n")
		fmt.Fprintf(out, "  list                                             Show the catalog\n")
		fmt.Fprintf(out, "  add -name N -image URL -price P [-description D] Add a food (starts unavailable)\n")
		fmt.Fprintf(out, "  edit -id ID [-name] [-image] [-price] [-description]\n")
		fmt.Fprintf(out, "                                                   Edit a food\n")
		fmt.Fprintf(out, "  toggle ID                                        Toggle availability\n")
		fmt.Fprintf(out, "  delete ID                                        Delete a food\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
	}
}

// load fetches the catalog, retrying a failed load up to retries times
func load(ctx context.Context, view *dashboard.View, retries int) error {
	err := view.Load(ctx)
	for i := 0; err != nil && i < retries; i++ {
		err = view.Retry(ctx)
	}
	return err
}
