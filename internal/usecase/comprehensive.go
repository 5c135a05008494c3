package usecase

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"AstroCalc/internal/domain/models"
)

// defaultSections are the analyses a comprehensive report runs when
// the caller does not pick its own set.
var defaultSections = []string{
	"natal-chart",
	"natal-aspects",
	"natal-patterns",
	"strength",
	"varga-d9",
	"dasha-tree",
}

// ComprehensiveUseCase fans one subject out over several analyses
// concurrently. Sections fail independently; one broken pipeline
// never empties the rest of the report.
type ComprehensiveUseCase struct {
	disp        *Dispatcher
	timeout     time.Duration
	concurrency int
}

func NewComprehensiveUseCase(disp *Dispatcher) *ComprehensiveUseCase {
	return &ComprehensiveUseCase{disp: disp, timeout: 60 * time.Second, concurrency: 4}
}

// Report runs the requested analysis ids (or the default set) for one
// subject. Only context cancellation aborts the whole report.
func (uc *ComprehensiveUseCase) Report(ctx context.Context, subject models.Subject, ids []string) (*models.ComprehensiveReport, error) {
	if len(ids) == 0 {
		ids = defaultSections
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	report := &models.ComprehensiveReport{
		Subject:  subject,
		Sections: make(map[string]*models.AnalysisResult, len(ids)),
		Errors:   map[string]string{},
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			res, err := uc.disp.Invoke(gctx, models.AnalysisRequest{
				AnalysisID: id,
				Subject:    subject,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Errors[id] = err.Error()
				return nil // section failures stay local
			}
			report.Sections[id] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return report, nil
}
