package organizer

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/organai/organai/organizer/models"
	"github.com/organai/organai/providers"
	"github.com/organai/organai/providers/contracts"
)

// SessionOptions controls one organizing run.
type SessionOptions struct {
	Provider          string
	UseContext        bool
	ConsiderStructure bool
	Refine            bool
	StayUnderRoot     bool
	EnableCache       bool
	Workers           int
	PerFileTimeout    time.Duration
}

// DefaultWorkers sizes the suggestion pool: at least four in-flight
// requests, more on wider machines.
func DefaultWorkers() int {
	n := runtime.NumCPU()
	if n < 4 {
		return 4
	}
	return n
}

// Session owns all mutable state of one run: the suggestion cache, the
// validator, and the project context built from the scanned root. Nothing
// here outlives the session.
type Session struct {
	provider  contracts.ISuggestionProvider
	cache     *SuggestionCache
	validator *Validator
	project   models.ProjectContext
	options   SessionOptions
}

func NewSession(provider contracts.ISuggestionProvider, project models.ProjectContext, options SessionOptions) *Session {
	if options.Workers <= 0 {
		options.Workers = DefaultWorkers()
	}
	if options.PerFileTimeout <= 0 {
		options.PerFileTimeout = 60 * time.Second
	}
	return &Session{
		provider: provider,
		cache:    NewSuggestionCache(),
		validator: &Validator{
			Project:       project,
			StayUnderRoot: options.StayUnderRoot,
		},
		project: project,
		options: options,
	}
}

// Cache exposes the session cache for snapshot persistence and reporting.
func (s *Session) Cache() *SuggestionCache { return s.cache }

// Suggest runs the suggestion pipeline for every record with a bounded
// worker pool. Outcomes keep record order; a backend failure for one file
// never aborts the rest, the file just falls back to its category folder.
func (s *Session) Suggest(ctx context.Context, records []models.FileRecord) []models.FileOutcome {
	outcomes := make([]models.FileOutcome, len(records))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.options.Workers)

	var mu sync.Mutex
	for i, record := range records {
		i, record := i, record
		group.Go(func() error {
			outcome := s.suggestOne(groupCtx, record)
			mu.Lock()
			outcomes[i] = outcome
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	return outcomes
}

// suggestOne resolves a single file: cache, first pass, optional refinement.
func (s *Session) suggestOne(ctx context.Context, record models.FileRecord) models.FileOutcome {
	outcome := models.FileOutcome{Record: record}

	fingerprint := Fingerprint(record)
	if s.options.EnableCache {
		if cached, ok := s.cache.Get(fingerprint); ok {
			// Accepted must be stable across runs: a cached fallback stays
			// rejected and keeps its fallback label.
			outcome.Accepted = cached.Source != models.SourceFallback
			if outcome.Accepted {
				cached.Source = models.SourceCached
			}
			outcome.Suggestion = cached
			return outcome
		}
	}

	fileCtx, cancel := context.WithTimeout(ctx, s.options.PerFileTimeout)
	defer cancel()

	promptOptions := PromptOptions{
		Provider:          s.options.Provider,
		UseContext:        s.options.UseContext,
		ConsiderStructure: s.options.ConsiderStructure,
	}

	prompt := BuildSuggestionPrompt(record, s.project, promptOptions)
	raw, err := providers.WithRetry(fileCtx, func(ctx context.Context) (string, error) {
		return s.provider.SuggestionRequest(ctx, prompt)
	})
	if err != nil {
		outcome.Err = err
		outcome.Suggestion = s.validator.fallback(record)
		return outcome
	}

	suggestion := s.validator.Validate(record, raw)

	if s.options.Refine && suggestion.Source != models.SourceFallback &&
		suggestion.Confidence != models.ConfidenceHigh {
		suggestion = s.refine(fileCtx, record, suggestion, promptOptions)
	}

	outcome.Suggestion = suggestion
	outcome.Accepted = suggestion.Source != models.SourceFallback

	if s.options.EnableCache {
		s.cache.Put(fingerprint, suggestion)
	}
	return outcome
}

// refine asks the backend to reconsider a low- or medium-confidence
// suggestion. A rejected or failed second pass keeps the first answer.
func (s *Session) refine(ctx context.Context, record models.FileRecord, first models.SuggestionResult, promptOptions PromptOptions) models.SuggestionResult {
	prompt := BuildRefinePrompt(record, s.project, first.Path, promptOptions)
	raw, err := providers.WithRetry(ctx, func(ctx context.Context) (string, error) {
		return s.provider.SuggestionRequest(ctx, prompt)
	})
	if err != nil {
		return first
	}

	refined := s.validator.Validate(record, raw)
	if refined.Source == models.SourceFallback {
		return first
	}
	refined.Source = models.SourceRefined
	return refined
}

// ApplyMoves moves every suggested file under root with a bounded worker
// pool and returns one move result per outcome.
func ApplyMoves(root string, outcomes []models.FileOutcome, workers int, dryRun bool) []models.MoveResult {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	mover := NewMover(root, dryRun)
	results := make([]models.MoveResult, 0, len(outcomes))

	group := new(errgroup.Group)
	group.SetLimit(workers)

	var mu sync.Mutex
	for _, outcome := range outcomes {
		outcome := outcome
		group.Go(func() error {
			result := mover.Move(outcome.Record.Path, outcome.Suggestion.Path)
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	return results
}
