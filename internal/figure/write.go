package figure

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/studyloom-cli/internal/logger"
	"github.com/KaramelBytes/studyloom-cli/internal/utils"
)

// WriteOptions controls WriteAll.
type WriteOptions struct {
	Format Format
	// Jobs bounds concurrent renders; 0 uses GOMAXPROCS.
	Jobs     int
	Progress bool
	Logger   *slog.Logger
}

// Written describes one file produced by WriteAll.
type Written struct {
	Name  string
	Path  string
	Bytes int
}

// WriteAll renders figs into dir as <name>.<ext>. Each file is written
// atomically; the first failure cancels the remaining renders. The result is
// ordered like figs.
func WriteAll(ctx context.Context, dir string, figs []*Figure, opt WriteOptions) ([]Written, error) {
	if opt.Format == "" {
		opt.Format = PNG
	}
	log := opt.Logger
	if log == nil {
		log = logger.Discard()
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create figures dir: %w", err)
	}
	jobs := opt.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var bar *pb.ProgressBar
	if opt.Progress {
		bar = pb.Full.Start(len(figs))
		bar.Set("prefix", "Rendering figures: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	out := make([]Written, len(figs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, f := range figs {
		i, f := i, f
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := f.Render(&buf, opt.Format); err != nil {
				return err
			}
			path := filepath.Join(dir, f.Name+opt.Format.Ext())
			if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			out[i] = Written{Name: f.Name, Path: path, Bytes: buf.Len()}
			log.Debug("figure written", "name", f.Name, "path", path, "size", humanize.Bytes(uint64(buf.Len())))
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, w := range out {
		total += w.Bytes
	}
	log.Info("figures written", "count", humanize.Comma(int64(len(out))), "dir", dir, "size", humanize.Bytes(uint64(total)))
	return out, nil
}
