// =============================================================================
// Card View - Pipeline Module
// =============================================================================
//
// This is the core module that orchestrates rendering one record file.
// It coordinates between the loaders, the card presenter and the renderers.
//
// PROCESSING PIPELINE:
//   1. Select the card configuration (explicit name or file pattern)
//   2. Resolve the card kind (fields, priority, limit, derived lines)
//   3. Load the records from the file
//   4. Present every record as a card
//   5. Render the cards to a document
//   6. Write the document to the output directory
//   7. Archive the input and output files (optional)
//
// ERROR HANDLING:
//   Each step returns a detailed error which lands in Result.Error.
//   Nothing in the pipeline panics on bad input.
//
// =============================================================================

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/cardview/internal/cards"
	"github.com/ginjaninja78/cardview/internal/config"
	"github.com/ginjaninja78/cardview/internal/format"
	"github.com/ginjaninja78/cardview/internal/records"
	"github.com/ginjaninja78/cardview/internal/render"
	"github.com/ginjaninja78/cardview/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result contains the result of rendering a single file.
type Result struct {
	// FilePath is the path to the input record file.
	FilePath string

	// Card is the name of the card configuration used.
	Card string

	// OutputFile is the path to the written document. Empty on dry runs.
	OutputFile string

	// Rendered holds the document bytes.
	Rendered []byte

	// Success indicates whether rendering was successful.
	Success bool

	// Error contains any error that occurred.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the rendering.
type ProcessingStats struct {
	// RecordsLoaded is the number of records read from the file.
	RecordsLoaded int

	// CardsRendered is the number of cards in the document.
	CardsRendered int

	// LinesRendered is the total number of card lines.
	LinesRendered int

	// ProcessingTime is how long it took to render the file.
	ProcessingTime time.Duration
}

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline renders record files into card documents.
type Pipeline struct {
	Config    *config.MainConfig
	Cards     []*config.CardConfig
	Catalog   *cards.Catalog
	Presenter *cards.Presenter
	Renderer  render.Renderer
	Files     *utils.FileManager
	Logger    *zap.Logger

	// CardName forces a card instead of matching file patterns.
	CardName string

	// DryRun renders without writing or archiving anything.
	DryRun bool

	// Now is the clock for document timestamps.
	Now func() time.Time
}

// New creates a pipeline with the built-in catalog, a presenter using the
// configured date layouts, and a file manager over the configured
// directories.
func New(cfg *config.MainConfig, cardConfigs []*config.CardConfig, renderer render.Renderer, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	dates := format.NewDateConverter(cfg.DateInputLayouts, cfg.DateOutputLayout)

	return &Pipeline{
		Config:    cfg,
		Cards:     cardConfigs,
		Catalog:   cards.DefaultCatalog(),
		Presenter: cards.NewPresenter(dates.Func(), logger.Named("presenter")),
		Renderer:  renderer,
		Files:     utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir, cfg.OutputArchiveDir),
		Logger:    logger,
		Now:       time.Now,
	}
}

// Run renders one record file.
//
// RETURNS:
//   - A Result; Result.Error is set when any step fails.
func (p *Pipeline) Run(ctx context.Context, path string) Result {
	startTime := time.Now()
	result := Result{FilePath: path}
	log := p.Logger.With(zap.String("file", path))

	card, err := p.selectCard(path)
	if err != nil {
		result.Error = err
		return result
	}
	result.Card = card.CardName
	log = log.With(zap.String("card", card.CardName))

	kind, err := p.Catalog.Resolve(card)
	if err != nil {
		result.Error = fmt.Errorf("failed to resolve card %q: %w", card.CardName, err)
		return result
	}

	recs, err := records.Load(ctx, path, card)
	if err != nil {
		result.Error = fmt.Errorf("failed to load records: %w", err)
		return result
	}
	result.Stats.RecordsLoaded = len(recs)
	log.Debug("records loaded", zap.Int("records", len(recs)))

	presented := p.Presenter.PresentAll(kind, recs)
	result.Stats.CardsRendered = len(presented)
	for _, c := range presented {
		result.Stats.LinesRendered += len(c.Lines)
	}

	doc := render.Document{
		Card:        card.CardName,
		Source:      filepath.Base(path),
		GeneratedAt: p.now(),
		Cards:       presented,
	}
	data, err := p.Renderer.Render(doc)
	if err != nil {
		result.Error = fmt.Errorf("failed to render cards: %w", err)
		return result
	}
	result.Rendered = data

	if p.DryRun {
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		log.Info("dry run rendered", zap.Int("cards", len(presented)))
		return result
	}

	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	outputPath, err := p.writeOutput(path, card, data)
	if err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}
	result.OutputFile = outputPath
	log.Info("wrote output", zap.String("output", outputPath), zap.Int("cards", len(presented)))

	if p.Config.ArchiveInputs {
		p.archiveFiles(log, path, outputPath)
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)
	return result
}

// RunAll renders files with up to MaxConcurrency workers. Results are
// returned in input order. Unless continue_on_error is set, the first
// failure cancels the files not yet started.
func (p *Pipeline) RunAll(ctx context.Context, paths []string) []Result {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]Result, len(paths))
	jobs := make(chan int)

	workers := min(max(p.Config.MaxConcurrency, 1), max(len(paths), 1))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					results[i] = Result{FilePath: paths[i], Error: fmt.Errorf("skipped: %w", err)}
					continue
				}
				results[i] = p.Run(ctx, paths[i])
				if results[i].Error != nil {
					p.Logger.Error("file failed", zap.String("file", paths[i]), zap.Error(results[i].Error))
					if !p.Config.ShouldContinueOnError() {
						cancel()
					}
				}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// selectCard picks the forced card, or the first card whose pattern matches.
func (p *Pipeline) selectCard(path string) (*config.CardConfig, error) {
	if p.CardName != "" {
		card := config.FindCard(p.CardName, p.Cards)
		if card == nil {
			return nil, fmt.Errorf("card %q not found", p.CardName)
		}
		return card, nil
	}

	card := config.MatchCard(path, p.Cards)
	if card == nil {
		return nil, fmt.Errorf("no card matches file %s", filepath.Base(path))
	}
	return card, nil
}

// writeOutput writes the document to the output directory.
func (p *Pipeline) writeOutput(inputPath string, card *config.CardConfig, data []byte) (string, error) {
	original := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	fileName := utils.GenerateOutputFileName(p.Config.OutputNameFormat, p.Renderer.Extension(), map[string]string{
		"card":     card.CardName,
		"original": original,
	})

	outputPath := filepath.Join(p.Config.OutputDir, fileName)
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return outputPath, nil
}

// archiveFiles archives the output copy first, then moves the input.
// Archive failures are logged; the render itself succeeded.
func (p *Pipeline) archiveFiles(log *zap.Logger, inputPath, outputPath string) {
	if archived, err := p.Files.ArchiveOutputFile(outputPath); err != nil {
		log.Warn("failed to archive output", zap.Error(err))
	} else {
		log.Debug("archived output", zap.String("archive", archived))
	}

	if archived, err := p.Files.ArchiveInputFile(inputPath); err != nil {
		log.Warn("failed to archive input", zap.Error(err))
	} else {
		log.Debug("archived input", zap.String("archive", archived))
	}
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summarize turns results into a processing summary.
func Summarize(results []Result, start, end time.Time) utils.ProcessingSummary {
	summary := utils.ProcessingSummary{
		StartTime:  start,
		EndTime:    end,
		TotalFiles: len(results),
	}

	for _, r := range results {
		if r.Success {
			summary.SuccessfulFiles++
			summary.TotalRecords += r.Stats.RecordsLoaded
			summary.TotalCards += r.Stats.CardsRendered
			summary.TotalLines += r.Stats.LinesRendered
			summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
				InputFile:   r.FilePath,
				OutputFile:  r.OutputFile,
				Card:        r.Card,
				Records:     r.Stats.RecordsLoaded,
				Cards:       r.Stats.CardsRendered,
				ProcessTime: r.Stats.ProcessingTime,
			})
			continue
		}

		summary.FailedFiles++
		msg := "unknown error"
		if r.Error != nil {
			msg = r.Error.Error()
		}
		summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
			InputFile:    r.FilePath,
			ErrorMessage: msg,
		})
	}

	return summary
}

// ErrorLogEntries lists the failed results for utils.WriteErrorLog.
func ErrorLogEntries(results []Result) []utils.ErrorLogEntry {
	var entries []utils.ErrorLogEntry
	for _, r := range results {
		if r.Success || r.Error == nil {
			continue
		}
		entries = append(entries, utils.ErrorLogEntry{
			Timestamp:    time.Now(),
			FileName:     r.FilePath,
			Card:         r.Card,
			ErrorType:    "render",
			ErrorMessage: r.Error.Error(),
		})
	}
	return entries
}
