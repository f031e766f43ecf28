package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/loomhdl/loom/elab"
	"github.com/loomhdl/loom/export"
	"github.com/loomhdl/loom/internal/ctxlog"
	"github.com/loomhdl/loom/manifest"
)

// Run elaborates every loaded design and writes its requested outputs.
// Designs run concurrently on a bounded worker pool; each elaboration
// stays single-threaded inside its own design.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if len(a.designs) == 0 {
		a.logger.Warn("No designs found, elaboration not required.")
		return nil
	}

	a.logger.Info("🚀 Starting concurrent elaboration...", "designs", len(a.designs), "workers", a.config.WorkerCount)

	jobs := make(chan *manifest.Design, len(a.designs))
	var mu sync.Mutex
	failures := make(map[string]error)
	var wg sync.WaitGroup

	for i := 0; i < a.config.WorkerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for dsn := range jobs {
				workerLogger := a.logger.With("workerID", workerID, "design", dsn.Name)
				workerLogger.Debug("Worker picked up design.")

				if err := a.elaborateDesign(ctxlog.WithLogger(ctx, workerLogger), dsn); err != nil {
					workerLogger.Error("Design elaboration failed.", "error", err)
					mu.Lock()
					failures[dsn.Name] = err
					mu.Unlock()
					continue
				}
				workerLogger.Debug("Design elaboration succeeded.")
			}
		}(i)
	}

	for _, dsn := range a.designs {
		jobs <- dsn
	}
	close(jobs)
	wg.Wait()

	if len(failures) > 0 {
		names := make([]string, 0, len(failures))
		for name := range failures {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("elaboration failed for %s: %w", strings.Join(names, ", "), failures[names[0]])
	}

	a.logger.Info("🏁 Elaboration finished.", "designs", len(a.designs))
	a.logger.Debug("App.Run method finished.")
	return nil
}

// elaborateDesign runs one design end to end: decode params, build the
// block tree, elaborate it, and write the requested outputs.
func (a *App) elaborateDesign(ctx context.Context, dsn *manifest.Design) error {
	logger := ctxlog.FromContext(ctx)

	gen, ok := a.registry.Lookup(dsn.Generator)
	if !ok {
		return fmt.Errorf("design '%s': unknown generator '%s' (have: %s)",
			dsn.Name, dsn.Generator, strings.Join(a.registry.Types(), ", "))
	}

	params, err := gen.DecodeParams(dsn.Params)
	if err != nil {
		return fmt.Errorf("design '%s': %w", dsn.Name, err)
	}

	d := elab.NewDesign(dsn.Name)
	root, err := gen.Build(ctx, d, params)
	if err != nil {
		return fmt.Errorf("design '%s': build: %w", dsn.Name, err)
	}
	// The manifest's design name trumps whatever the generator suggested.
	root.SuggestName(dsn.Name)

	strict := a.config.Strict
	if dsn.Strict != nil {
		strict = *dsn.Strict
	}
	res, err := d.Elaborate(ctx, root, elab.ElabOptions{FailOnUnresolved: strict})
	if err != nil {
		return fmt.Errorf("design '%s': elaborate: %w", dsn.Name, err)
	}
	logger.Info("Design elaborated.", "ports", res.Boundary.Len(), "unresolved", len(res.Unresolved))

	return a.writeOutputs(ctx, dsn, res.Root)
}

// writeOutputs renders every requested artifact of a design. Relative
// output paths land in <OutputPath>/<design>/.
func (a *App) writeOutputs(ctx context.Context, dsn *manifest.Design, root *elab.Block) error {
	logger := ctxlog.FromContext(ctx)

	if len(dsn.Outputs) == 0 {
		logger.Debug("Design has no outputs, skipping export.")
		return nil
	}

	rep, err := export.Snapshot(root)
	if err != nil {
		return fmt.Errorf("design '%s': snapshot: %w", dsn.Name, err)
	}

	for _, out := range dsn.Outputs {
		path := out.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(a.config.OutputPath, dsn.Name, path)
		}
		if err := a.writeOutput(rep, out.Format, path); err != nil {
			return fmt.Errorf("design '%s': output '%s': %w", dsn.Name, out.Path, err)
		}
		logger.Info("Output written.", "format", out.Format, "path", path)
	}
	return nil
}

// writeOutput renders one artifact to disk, creating parent directories
// as needed.
func (a *App) writeOutput(rep *export.Report, format, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch format {
	case manifest.FormatJSON:
		err = export.WriteJSON(f, rep)
	case manifest.FormatYAML:
		err = export.WriteYAML(f, rep)
	case manifest.FormatDOT:
		err = export.WriteDOT(f, rep)
	default:
		err = fmt.Errorf("unsupported format '%s'", format)
	}

	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
