package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shanehull/iposcraper/internal/config"
	"github.com/shanehull/iposcraper/internal/ipo"
	"github.com/shanehull/iposcraper/internal/notify"
)

var (
	envFile = flag.String("env-file", "", "(-e) Path to a dotenv file (default: .env if present)")
	dryRun  = flag.Bool("dry-run", false, "(-n) Print the HTML report to stdout instead of emailing it")
)

func init() {
	flag.StringVar(envFile, "e", "", "(-e) Path to a dotenv file (shorthand)")
	flag.BoolVar(dryRun, "n", false, "(-n) Print the HTML report to stdout instead of emailing it (shorthand)")

	flag.Usage = func() {
		flagSet := flag.CommandLine
		fmt.Fprintf(flagSet.Output(), "Usage of %s:\n", os.Args[0])

		for _, name := range []string{"env-file", "dry-run"} {
			if f := flagSet.Lookup(name); f != nil {
				fmt.Fprintf(flagSet.Output(), "  -%s\n", f.Name)
				fmt.Fprintf(flagSet.Output(), "    %s\n", f.Usage)
			}
		}

		fmt.Fprintln(flagSet.Output(), "\nEnvironment: SENDER_EMAIL, GMAIL_APP_PASS, RECIPIENTS, SMTP_SERVER, SMTP_PORT, LOG_LEVEL")
	}
}

func main() {
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	count, err := run(ctx, logger, os.Stdout)
	if err != nil {
		stop()
		logger.WithError(err).Fatal("IPO report failed")
	}

	if *dryRun {
		fmt.Fprintf(os.Stderr, "Rendered report with %d open IPO(s).\n", count)
		return
	}
	fmt.Printf("Sent email with %d open IPO(s).\n", count)
}

func run(ctx context.Context, logger *logrus.Logger, stdout io.Writer) (int, error) {
	cfg, err := config.Load(*envFile)
	if err != nil {
		return 0, err
	}
	logger.SetLevel(cfg.Level())

	if !*dryRun {
		if err := cfg.Validate(); err != nil {
			return 0, err
		}
	}

	now := time.Now()

	fetcher := ipo.NewFetcher(
		ipo.WithLogger(logger),
		ipo.WithClock(func() time.Time { return now }),
	)

	records, err := fetcher.FetchOpenIPOs(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching IPO report: %w", err)
	}

	listings := ipo.NewListings(records)

	notify.ReportListings(os.Stderr, listings)

	msg, err := notify.NewReportRenderer().Render(listings, now)
	if err != nil {
		return 0, err
	}

	if *dryRun {
		fmt.Fprintln(stdout, msg.HTML)
		return len(listings), nil
	}

	sender := notify.NewEmailSender(cfg.SMTP, notify.WithSenderLogger(logger))
	if err := sender.Send(msg); err != nil {
		return 0, fmt.Errorf("sending report: %w", err)
	}

	return len(listings), nil
}
