package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"price-scout/internal/model"
	"price-scout/internal/pricing"
	"price-scout/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SeederConfig holds configuration for the catalog seeder.
type SeederConfig struct {
	// FilePaths is the list of catalog files to load. When empty, the
	// built-in default definitions are seeded instead.
	FilePaths []string
}

// Seeder loads catalog definitions and inserts the missing global
// categories. Seeding is idempotent; existing global categories are
// never touched.
type Seeder struct {
	categoryRepo repository.CategoryRepository
	loader       Loader
	config       SeederConfig
	logger       zerolog.Logger
}

// NewSeeder creates a new catalog seeder.
func NewSeeder(categoryRepo repository.CategoryRepository, loader Loader, config SeederConfig, logger zerolog.Logger) *Seeder {
	return &Seeder{
		categoryRepo: categoryRepo,
		loader:       loader,
		config:       config,
		logger:       logger.With().Str("component", "catalog-seeder").Logger(),
	}
}

// Seed loads all configured catalog files concurrently and inserts any
// global category that does not exist yet. Definitions that fail
// validation are skipped with a warning rather than aborting startup.
func (s *Seeder) Seed(ctx context.Context) error {
	definitions, err := s.loadDefinitions(ctx)
	if err != nil {
		return err
	}

	inserted := 0
	for _, def := range definitions {
		if err := validateDefinition(def); err != nil {
			s.logger.Warn().
				Err(err).
				Str("value", def.Value).
				Msg("skipping invalid catalog definition")
			continue
		}

		category := &model.Category{
			ID:           uuid.New(),
			Value:        def.Value,
			Label:        def.Label,
			DefaultUnit:  def.DefaultUnit,
			AllowedUnits: def.AllowedUnits,
			CreatedAt:    time.Now().UTC(),
		}

		created, err := s.categoryRepo.CreateGlobalIfMissing(ctx, category)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", def.Value, err)
		}
		if created {
			inserted++
		}
	}

	s.logger.Info().
		Int("definitions", len(definitions)).
		Int("inserted", inserted).
		Msg("catalog seeded")

	return nil
}

// loadDefinitions reads all configured catalog files concurrently and
// merges their definitions, first occurrence of a value winning. With no
// files configured, the built-in defaults are used.
func (s *Seeder) loadDefinitions(ctx context.Context) ([]Definition, error) {
	if len(s.config.FilePaths) == 0 {
		s.logger.Info().Msg("no catalog files configured, using built-in defaults")
		return Defaults(), nil
	}

	type loadResult struct {
		index       int
		definitions []Definition
		err         error
	}

	resultChan := make(chan loadResult, len(s.config.FilePaths))
	var wg sync.WaitGroup

	for i, filePath := range s.config.FilePaths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			definitions, err := s.loader.Load(ctx, path)
			resultChan <- loadResult{
				index:       index,
				definitions: definitions,
				err:         err,
			}
		}(i, filePath)
	}

	wg.Wait()
	close(resultChan)

	results := make([]loadResult, len(s.config.FilePaths))
	for result := range resultChan {
		results[result.index] = result
	}

	var merged []Definition
	seen := make(map[string]bool)
	for i, result := range results {
		if result.err != nil {
			return nil, fmt.Errorf("failed to load catalog file %s: %w", s.config.FilePaths[i], result.err)
		}
		for _, def := range result.definitions {
			if seen[def.Value] {
				continue
			}
			seen[def.Value] = true
			merged = append(merged, def)
		}
	}

	return merged, nil
}

// validateDefinition checks a catalog definition against the category
// invariants: non-empty identity, recognised units, default allowed.
func validateDefinition(def Definition) error {
	if def.Value == "" || def.Label == "" {
		return fmt.Errorf("definition missing value or label")
	}
	if len(def.AllowedUnits) == 0 {
		return fmt.Errorf("definition %s has no allowed units", def.Value)
	}
	defaultAllowed := false
	for _, unit := range def.AllowedUnits {
		if !pricing.KnownUnit(unit) {
			return fmt.Errorf("definition %s has unknown unit %q", def.Value, unit)
		}
		if unit == def.DefaultUnit {
			defaultAllowed = true
		}
	}
	if !defaultAllowed {
		return fmt.Errorf("definition %s default unit %q is not allowed", def.Value, def.DefaultUnit)
	}
	return nil
}
