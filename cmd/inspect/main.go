// Command inspect fetches a URL and reports on its HTTP semantics.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"http-inspector/application/http"
	"http-inspector/application/http/analysis"
	"http-inspector/application/http/fetch"
	"http-inspector/application/http/header"
	"http-inspector/application/http/semantic"
	"http-inspector/application/util/domain"
	"http-inspector/internal/config"
	"http-inspector/transport/tcp"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// headerFlags collects repeated -H "Name: value" flags.
type headerFlags []http.Field

func (h *headerFlags) String() string {
	out := make([]string, len(*h))
	for idx, f := range *h {
		out[idx] = string(f.Text())
	}
	return strings.Join(out, ", ")
}

func (h *headerFlags) Set(value string) error {
	f, err := http.ParseField([]byte(value))
	if err != nil {
		return errors.Wrapf(err, "parsing header %q", value)
	}
	*h = append(*h, f)
	return nil
}

type options struct {
	configPath string
	method     string
	format     string
	timeout    time.Duration
	headers    headerFlags
	uri        string
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	fs.StringVar(&opts.method, "method", string(semantic.MethodGet), "request method")
	fs.StringVar(&opts.format, "format", "text", "output format: text or json")
	fs.DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall time limit")
	fs.Var(&opts.headers, "H", "request header as \"Name: value\", repeatable")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: inspect [flags] URL")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return options{}, errors.New("exactly one URL is required")
	}
	opts.uri = fs.Arg(0)

	if opts.format != "text" && opts.format != "json" {
		return options{}, errors.Errorf("unknown format %q", opts.format)
	}
	if opts.timeout <= 0 {
		return options{}, errors.Errorf("timeout must be positive: %s", opts.timeout)
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "inspect: %v\n", err)
		return 2
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "inspect: %v\n", err)
		return 2
	}

	report, err := inspect(ctx, cfg, opts, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "inspect: %v\n", err)
		return 1
	}

	if opts.format == "json" {
		err = writeJSON(stdout, report)
	} else {
		err = writeText(stdout, report)
	}
	if err != nil {
		fmt.Fprintf(stderr, "inspect: %v\n", err)
		return 1
	}
	return 0
}

func inspect(ctx context.Context, cfg config.Config, opts options, stderr io.Writer) (*analysis.Report, error) {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	clk := clock.New()

	engine, err := fetch.New(
		tcp.NewDialer(domain.NewNetLookuper(nil)),
		cfg.Limiter(clk),
		logger,
		clk,
		cfg.FetchOptions(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating engine")
	}
	defer engine.Close()

	inspector := analysis.New(engine, header.NewPipeline(header.DefaultRegistry()), logger, clk, cfg.Checks)

	ctx, cancel := clk.WithTimeout(ctx, opts.timeout)
	defer cancel()

	request := &semantic.Request{
		Method:  semantic.Method(strings.ToUpper(opts.method)),
		URI:     opts.uri,
		Headers: opts.headers,
	}
	return inspector.Inspect(ctx, request)
}
