package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	cgen "github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/generator/c"
	"github.com/lxq2537664558/protobuf-c-rpc/internal/codegen/meta"
)

// ErrDuplicateOutput is returned when two inputs render to the same output path.
var ErrDuplicateOutput = errors.New("duplicate output path")

// Generator renders C enum sources for a set of files and writes them below an output directory.
type Generator struct {
	outputDir string
	logger    *slog.Logger
	opts      cgen.Options
	jobs      int
}

// New returns a Generator writing below outputDir. jobs bounds how many files
// are rendered concurrently; values below 1 mean GOMAXPROCS.
func New(outputDir string, logger *slog.Logger, opts cgen.Options, jobs int) *Generator {
	if jobs < 1 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return &Generator{
		outputDir: outputDir,
		logger:    logger,
		opts:      opts,
		jobs:      jobs,
	}
}

// Render renders every file of md. Outputs keep the order of md.Files,
// followed by the CMakeLists.txt when a CMake target is configured.
func (g *Generator) Render(ctx context.Context, md *meta.Metadata) ([]cgen.Output, error) {
	results := make([][]cgen.Output, len(md.Files))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.jobs)
	for i := range md.Files {
		i := i
		f := &md.Files[i]
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outs, err := cgen.Generate(g.logger, f, g.opts)
			if err != nil {
				return fmt.Errorf("generate %s: %w", f.Name, err)
			}
			results[i] = outs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var all []cgen.Output
	var sources []string
	owner := make(map[string]string)
	for i, outs := range results {
		for _, o := range outs {
			if prev, ok := owner[o.Path]; ok {
				return nil, fmt.Errorf("%w: %s from %s and %s", ErrDuplicateOutput, o.Path, prev, md.Files[i].Source())
			}
			owner[o.Path] = md.Files[i].Source()
			all = append(all, o)
			if strings.HasSuffix(o.Path, ".c") {
				sources = append(sources, o.Path)
			}
		}
	}

	if g.opts.CMakeTarget != "" {
		cm, err := cgen.GenerateCMake(sources, g.opts)
		if err != nil {
			return nil, err
		}
		all = append(all, cm)
	}
	return all, nil
}

// Generate renders md and writes the results below the output directory.
// Files whose content did not change are left untouched.
func (g *Generator) Generate(ctx context.Context, md *meta.Metadata) error {
	g.logger.Info("Generating C enum sources", "files", len(md.Files), "enums", md.EnumCount(), "output", g.outputDir)

	outs, err := g.Render(ctx, md)
	if err != nil {
		return err
	}

	written := 0
	for _, o := range outs {
		changed, err := WriteFile(ctx, g.outputDir, o.Path, o.Content)
		if err != nil {
			return err
		}
		if changed {
			written++
			g.logger.Info("Wrote generated file", "file", o.Path)
		} else {
			g.logger.Debug("Generated file unchanged", "file", o.Path)
		}
	}

	g.logger.Info("C enum generation complete", "written", written, "unchanged", len(outs)-written)
	return nil
}
