// Package analysis fetches a response and reasons about its semantics:
// status, body integrity, caching and what probe exchanges reveal.
package analysis

import (
	"context"
	"log/slog"
	"sync"

	"http-inspector/application/http/fetch"
	"http-inspector/application/http/header"
	"http-inspector/application/http/links"
	"http-inspector/application/http/message"
	"http-inspector/application/http/note"
	"http-inspector/application/http/semantic"
	"http-inspector/application/http/transfer"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

// Fetcher runs one exchange, reporting its events to h.
// *fetch.Engine implements it.
type Fetcher interface {
	Fetch(ctx context.Context, request *semantic.Request, h fetch.Handler) error
}

type Options struct {
	// ExtractLinks collects links from HTML payloads of the primary response.
	ExtractLinks bool

	ETagValidate bool
	LMValidate   bool
	Conneg       bool
	Range        bool
}

func DefaultOptions() Options {
	return Options{
		ExtractLinks: true,
		ETagValidate: true,
		LMValidate:   true,
		Conneg:       true,
		Range:        true,
	}
}

// probes returns the enabled probes in reporting order.
func (o Options) probes() []Probe {
	enabled := map[string]bool{
		ETagValidate{}.Name(): o.ETagValidate,
		LMValidate{}.Name():   o.LMValidate,
		Conneg{}.Name():       o.Conneg,
		Range{}.Name():        o.Range,
	}

	probes := make([]Probe, 0, len(enabled))
	for _, p := range DefaultProbes() {
		if enabled[p.Name()] {
			probes = append(probes, p)
		}
	}
	return probes
}

// Report is the outcome of one inspection.
type Report struct {
	Response  *message.Response `json:"response"`
	Freshness *Freshness        `json:"freshness,omitempty"`
	Notes     []note.Note       `json:"notes"`
	Links     []links.Link      `json:"links"`
}

type Inspector struct {
	fetcher  Fetcher
	pipeline *header.Pipeline
	logger   *slog.Logger
	clock    clock.Clock
	opts     Options
}

func New(fetcher Fetcher, pipeline *header.Pipeline, logger *slog.Logger, clock clock.Clock, opts Options) *Inspector {
	return &Inspector{
		fetcher:  fetcher,
		pipeline: pipeline,
		logger:   logger,
		clock:    clock,
		opts:     opts,
	}
}

// Inspect fetches request and analyses the response.
// Transfer failures are part of the report. The error is only set
// when the request could not be issued at all.
func (i *Inspector) Inspect(ctx context.Context, request *semantic.Request) (*Report, error) {
	req := request.Clone()
	if req.Method == "" {
		req.Method = semantic.MethodGet
	}

	notes := note.NewCollector()
	CheckRequest(req, notes)

	base := Base{Request: req}
	if !req.HasHeader("Accept-Encoding") {
		req.SetHeader("Accept-Encoding", "gzip")
		base.AskedGzip = true
	}

	recorder := message.NewRecorder(req, i.pipeline, notes, i.clock, i.opts.ExtractLinks)
	if err := i.fetcher.Fetch(ctx, req, recorder); err != nil {
		if _, ok := transfer.AsError(err); !ok {
			return nil, errors.Wrap(err, "fetching primary response")
		}
		i.logger.Debug("primary response incomplete", "uri", req.URI, "error", err)
	}

	resp := recorder.Response()
	base.Response = resp
	report := &Report{Response: resp, Links: recorder.Links()}

	if resp.Parsed != nil {
		CheckStatus(req, resp, notes)
		CheckBody(resp, notes)
		freshness := CheckCaching(req, resp, notes)
		report.Freshness = &freshness
	}

	if resp.Complete {
		for _, probed := range i.probe(ctx, base) {
			notes.Merge(probed)
		}
	}

	report.Notes = notes.Notes()
	return report, nil
}

// probe runs the applicable probes concurrently. The collectors come
// back in probe order.
func (i *Inspector) probe(ctx context.Context, base Base) []*note.Collector {
	probes := i.opts.probes()
	results := make([]*note.Collector, len(probes))

	var wg sync.WaitGroup
	for idx, p := range probes {
		if !p.Preflight(base) {
			continue
		}

		results[idx] = note.NewCollector()
		wg.Add(1)
		go func() {
			defer wg.Done()
			i.runProbe(ctx, base, p, results[idx])
		}()
	}
	wg.Wait()

	return results
}

func (i *Inspector) runProbe(ctx context.Context, base Base, p Probe, notes *note.Collector) {
	req := p.Request(base)
	// Notes about the probe response itself are not reported.
	recorder := message.NewRecorder(req, i.pipeline, note.NewCollector(), i.clock, false)

	err := i.fetcher.Fetch(ctx, req, recorder)
	if err != nil {
		i.logger.Debug("probe failed", "probe", p.Name(), "error", err)
	}

	// A request that never started has an empty record.
	p.Evaluate(base, recorder.Response(), err, notes)
}
