// Package batch runs extraction over many documents concurrently. It owns
// the dispatch table from form type to parser, so callers hand it raw
// documents and get typed records back without knowing the per-form APIs.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/quantfold/filingscan/internal/extract/confidence"
	"github.com/quantfold/filingscan/internal/forms"
	"github.com/quantfold/filingscan/internal/forms/capex"
	"github.com/quantfold/filingscan/internal/forms/earnings"
	"github.com/quantfold/filingscan/internal/forms/events"
	"github.com/quantfold/filingscan/internal/forms/holdings"
	"github.com/quantfold/filingscan/internal/forms/insider"
	"github.com/quantfold/filingscan/internal/forms/ownership"
	"github.com/quantfold/filingscan/pkg/models"
)

// DefaultConcurrency bounds parallel extraction when the caller does not
// configure a limit.
const DefaultConcurrency = 4

// Request is one document to extract. The optional fields only apply to
// the form types that use them.
type Request struct {
	Form     models.FormType
	Content  string
	Identity models.FilingIdentity

	Prior         ownership.Prior // 13D/13G percent-change basis
	Basis         capex.Basis     // CapEx comparison figures
	Period        string          // CapEx period label
	FiscalQuarter int             // earnings call
	FiscalYear    int             // earnings call
}

// Result pairs a request with its typed record or its error. Extraction
// failures are isolated per document.
type Result struct {
	Request Request
	Record  any
	Err     error
}

// Extractor dispatches documents to the per-form parsers.
type Extractor struct {
	insider     *insider.Parser
	holdings    *holdings.Parser
	ownership   *ownership.Parser
	events      *events.Parser
	capex       *capex.Parser
	earnings    *earnings.Parser
	concurrency int
}

// NewExtractor builds an extractor whose parsers share one confidence
// policy and one set of excerpt caps. concurrency of zero or less falls
// back to DefaultConcurrency.
func NewExtractor(scorer confidence.Scorer, caps forms.Caps, concurrency int) *Extractor {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Extractor{
		insider:     insider.NewParser(scorer),
		holdings:    holdings.NewParser(scorer),
		ownership:   ownership.NewParser(scorer, caps),
		events:      events.NewParser(scorer, caps),
		capex:       capex.NewParser(scorer),
		earnings:    earnings.NewParser(scorer),
		concurrency: concurrency,
	}
}

// Extract parses a single document according to its form type.
func (e *Extractor) Extract(req Request) (any, error) {
	switch req.Form {
	case models.FormInsiderInitial:
		return e.insider.ParseInitial(req.Content, req.Identity)
	case models.FormInsiderTransaction:
		return e.insider.ParseTransactions(req.Content, req.Identity)
	case models.FormInsiderAnnual:
		return e.insider.ParseAnnual(req.Content, req.Identity)
	case models.FormHoldings:
		return e.holdings.Parse(req.Content, req.Identity)
	case models.FormOwnershipActive, models.FormOwnershipPassive:
		return e.ownership.Parse(req.Content, req.Form, req.Identity, req.Prior)
	case models.FormMaterialEvent:
		return e.events.Parse(req.Content, req.Identity)
	case models.FormCapEx:
		return e.capex.Parse(req.Content, req.Identity, req.Period, req.Basis)
	case models.FormEarningsCall:
		return e.earnings.Parse(req.Content, req.Identity, req.FiscalQuarter, req.FiscalYear)
	default:
		return nil, fmt.Errorf("no parser registered for form type %q", req.Form)
	}
}

// ExtractAll parses every request concurrently and returns results in
// request order. A failed document carries its own error; it never aborts
// the rest of the batch.
func (e *Extractor) ExtractAll(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, req := range reqs {
		results[i].Request = req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Record, results[i].Err = e.Extract(req)
			return nil
		})
	}

	// Workers only report per-document errors, so Wait cannot fail.
	_ = g.Wait()
	return results
}
