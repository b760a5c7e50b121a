// Package gateway exposes the fill engine over HTTP and MCP.
//
// One Service wraps the rule store and the engine configuration. HTTP and
// MCP registration are separate so a binary can serve either or both on
// whatever router and server it already runs.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hazyhaar/formfill/domfill"
	"github.com/hazyhaar/formfill/fill"
	"github.com/hazyhaar/formfill/htmldoc"
	"github.com/hazyhaar/formfill/idgen"
	"github.com/hazyhaar/formfill/rules"
	"github.com/hazyhaar/formfill/synth"
)

// ErrNoBrowser is returned when a URL fill is requested but no browser was
// attached to the service.
var ErrNoBrowser = errors.New("gateway: no browser configured for url fills")

// Service is the gateway around one rule store and one option set.
type Service struct {
	store   *rules.Store
	opts    *fill.Options
	ai      synth.AIGenerator
	browser *domfill.Browser
	logger  *slog.Logger
	runIDs  idgen.Generator
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithBrowser attaches a live browser, enabling URL fills.
func WithBrowser(b *domfill.Browser) ServiceOption {
	return func(s *Service) { s.browser = b }
}

// WithAI attaches a remote value generator for free-text fields.
func WithAI(ai synth.AIGenerator) ServiceOption {
	return func(s *Service) { s.ai = ai }
}

// New creates a Service. A nil store serves fills with configured and
// built-in rules only; rule management endpoints then return an error.
func New(store *rules.Store, opts *fill.Options, logger *slog.Logger, sos ...ServiceOption) *Service {
	if opts == nil {
		opts = fill.DefaultOptions()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:  store,
		opts:   opts,
		logger: logger,
		runIDs: idgen.Timestamped(idgen.NanoID(6)),
	}
	for _, so := range sos {
		so(s)
	}
	return s
}

// FillRequest asks for one fill pass over inline HTML or a live URL.
// Exactly one of HTML and URL must be set. A zero seed means time-seeded.
type FillRequest struct {
	HTML string `json:"html,omitempty"`
	URL  string `json:"url,omitempty"`
	Seed uint64 `json:"seed,omitempty"`
}

// FillResponse reports the pass and, for inline HTML, returns the filled
// document. RunID ties the response to the gateway's log lines for the
// pass.
type FillResponse struct {
	RunID  string      `json:"run_id"`
	Report fill.Report `json:"report"`
	HTML   string      `json:"html,omitempty"`
}

// Fill runs one pass. Stored rule tiers are loaded fresh per request so
// rule edits apply immediately.
func (s *Service) Fill(ctx context.Context, req FillRequest) (*FillResponse, error) {
	if (req.HTML == "") == (req.URL == "") {
		return nil, fmt.Errorf("gateway: exactly one of html and url is required")
	}

	var profile, global []rules.Rule
	if s.store != nil {
		var err error
		profile, global, err = s.store.LoadTiers(ctx)
		if err != nil {
			return nil, fmt.Errorf("gateway: load rules: %w", err)
		}
	}
	resolver := rules.NewResolver(profile, global, s.logger)

	runID := s.runIDs()
	var resp *FillResponse
	var err error
	if req.HTML != "" {
		resp, err = s.fillHTML(ctx, req, resolver)
	} else {
		resp, err = s.fillURL(ctx, req, resolver)
	}
	if err != nil {
		return nil, err
	}
	resp.RunID = runID
	s.logger.Info("gateway: fill pass complete", "run_id", runID,
		"filled", resp.Report.Filled, "skipped", resp.Report.Skipped, "errors", resp.Report.Errors)
	return resp, nil
}

func (s *Service) fillHTML(ctx context.Context, req FillRequest, resolver *rules.Resolver) (*FillResponse, error) {
	doc, err := htmldoc.ParseString(req.HTML)
	if err != nil {
		return nil, err
	}

	f := fill.New(s.opts, resolver, synth.New(req.Seed), s.fillerOptions()...)
	report, err := f.FillAll(ctx, doc)
	if err != nil {
		return nil, err
	}
	out, err := doc.RenderString()
	if err != nil {
		return nil, err
	}
	return &FillResponse{Report: report, HTML: out}, nil
}

func (s *Service) fillURL(ctx context.Context, req FillRequest, resolver *rules.Resolver) (*FillResponse, error) {
	if s.browser == nil {
		return nil, ErrNoBrowser
	}
	page, err := s.browser.Open(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	fos := append(s.fillerOptions(), fill.WithNotifier(domfill.EventNotifier{}))
	f := fill.New(s.opts, resolver, synth.New(req.Seed), fos...)
	report, err := f.FillAll(ctx, page)
	if err != nil {
		return nil, err
	}
	out, err := page.HTML(ctx)
	if err != nil {
		s.logger.Warn("gateway: serialize filled page failed", "url", req.URL, "error", err)
		out = ""
	}
	return &FillResponse{Report: report, HTML: out}, nil
}

func (s *Service) fillerOptions() []fill.FillerOption {
	fos := []fill.FillerOption{fill.WithLogger(s.logger)}
	if s.ai != nil {
		fos = append(fos, fill.WithAI(s.ai))
	}
	return fos
}

// AddRule validates and stores one rule in a tier.
func (s *Service) AddRule(ctx context.Context, tier rules.Tier, r *rules.Rule) error {
	if s.store == nil {
		return fmt.Errorf("gateway: no rule store configured")
	}
	if !tier.Valid() {
		return fmt.Errorf("gateway: unknown tier %q", tier)
	}
	if len(r.Match) == 0 {
		return fmt.Errorf("gateway: rule needs at least one match pattern")
	}
	if strings.TrimSpace(string(r.Type)) == "" {
		return fmt.Errorf("gateway: rule needs a type")
	}
	return s.store.Insert(ctx, tier, r)
}

// ListRules returns both stored tiers.
func (s *Service) ListRules(ctx context.Context) (profile, global []rules.Rule, err error) {
	if s.store == nil {
		return nil, nil, fmt.Errorf("gateway: no rule store configured")
	}
	return s.store.LoadTiers(ctx)
}

// DeleteRule removes a stored rule by ID.
func (s *Service) DeleteRule(ctx context.Context, id string) error {
	if s.store == nil {
		return fmt.Errorf("gateway: no rule store configured")
	}
	if id == "" {
		return fmt.Errorf("gateway: rule id is required")
	}
	return s.store.Delete(ctx, id)
}
