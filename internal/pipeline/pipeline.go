// Package pipeline drives a scrape across every configured chamber and writes
// the results only once all of them have succeeded.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/roster-cli/internal/export"
	"github.com/sells-group/roster-cli/internal/roster"
)

// Options configures a Run.
type Options struct {
	// Concurrency caps the chambers fetched at once. Zero fetches all.
	Concurrency int
}

// Summary describes one chamber's written roster.
type Summary struct {
	Chamber         string        `json:"chamber"`
	Output          string        `json:"output"`
	IssuesPath      string        `json:"issues_path,omitempty"`
	Members         int           `json:"members"`
	DistrictOffices int           `json:"district_offices"`
	Issues          int           `json:"issues"`
	Elapsed         time.Duration `json:"elapsed"`
}

// Run extracts every chamber concurrently. The first failure cancels the
// remaining chambers and nothing is written. Every roster and issue report is
// staged before any of them replaces its target.
func Run(ctx context.Context, extractors []*roster.Extractor, opts Options) ([]Summary, error) {
	if len(extractors) == 0 {
		return nil, eris.New("pipeline: no chambers to scrape")
	}

	start := time.Now()
	results := make([]*roster.Result, len(extractors))
	elapsed := make([]time.Duration, len(extractors))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, e := range extractors {
		g.Go(func() error {
			chamberStart := time.Now()
			res, err := e.Extract(gctx)
			if err != nil {
				return err
			}
			results[i] = res
			elapsed[i] = time.Since(chamberStart)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		zap.L().Error("scrape aborted, no files written", zap.Error(err))
		return nil, err
	}

	var batch export.Batch
	summaries := make([]Summary, 0, len(results))
	for i, res := range results {
		s, err := stage(&batch, res)
		if err != nil {
			zap.L().Error("staging failed, no files written", zap.Error(err))
			return nil, err
		}
		s.Elapsed = elapsed[i]
		summaries = append(summaries, s)
	}
	if err := batch.Commit(); err != nil {
		return nil, eris.Wrap(err, "pipeline: publish rosters")
	}
	for _, s := range summaries {
		logWritten(s)
	}

	zap.L().Info("scrape complete",
		zap.Int("chambers", len(summaries)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return summaries, nil
}

func stage(b *export.Batch, res *roster.Result) (Summary, error) {
	ch := res.Chamber
	s := Summary{
		Chamber:         ch.Name,
		Output:          ch.Output,
		Members:         len(res.Members),
		DistrictOffices: res.DistrictOfficeCount(),
		Issues:          len(res.Issues),
	}

	if err := b.StageMembers(ch.Output, res.Members); err != nil {
		return s, eris.Wrapf(err, "pipeline: write %s roster", ch.Name)
	}
	path, err := b.StageIssues(ch.Output, res.Issues)
	if err != nil {
		return s, eris.Wrapf(err, "pipeline: write %s issues", ch.Name)
	}
	s.IssuesPath = path
	return s, nil
}

func logWritten(s Summary) {
	log := zap.L().With(zap.String("chamber", s.Chamber))
	log.Info("roster written",
		zap.String("output", s.Output),
		zap.Int("members", s.Members),
		zap.Int("district_offices", s.DistrictOffices),
	)
	if s.IssuesPath != "" {
		log.Warn("office text left unparsed",
			zap.Int("issues", s.Issues),
			zap.String("report", s.IssuesPath),
		)
	}
}
