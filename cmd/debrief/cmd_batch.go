package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"debrief/internal/logging"
	"debrief/internal/pipeline"
	"debrief/internal/session"
)

var batchFlags struct {
	outputDir string
	parallel  int
}

var batchCmd = &cobra.Command{
	Use:   "batch <session-dir>",
	Short: "Generate briefs for every session file in a directory",
	Long: `Batch runs the full pipeline over every .yaml/.yml/.json file in a
directory, writing <name>.pdf and <name>.brief.json into the output
directory. Sessions run in parallel; each run owns its own browser
process. One failed session aborts the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVarP(&batchFlags.outputDir, "output", "o", ".", "Output directory")
	f.IntVar(&batchFlags.parallel, "parallel", 2, "Max sessions processed concurrently")
}

func runBatch(cmd *cobra.Command, args []string) error {
	entries, err := os.ReadDir(args[0])
	if err != nil {
		return fmt.Errorf("read session dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			paths = append(paths, filepath.Join(args[0], e.Name()))
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no session files in %s", args[0])
	}

	if err := os.MkdirAll(batchFlags.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	logger := logging.New("batch")
	logger.Info("starting batch", "sessions", len(paths), "parallel", batchFlags.parallel)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(batchFlags.parallel)
	for _, path := range paths {
		g.Go(func() error {
			sess, err := session.LoadFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			p, err := pipeline.New(cfg)
			if err != nil {
				return err
			}
			res, err := p.Run(ctx, sess)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			base := filepath.Join(batchFlags.outputDir, stripExt(filepath.Base(path)))
			if err := os.WriteFile(base+".brief.json", res.BriefJSON, 0o644); err != nil {
				return fmt.Errorf("%s: write brief json: %w", path, err)
			}
			if err := os.WriteFile(base+".pdf", res.PDF, 0o644); err != nil {
				return fmt.Errorf("%s: write pdf: %w", path, err)
			}
			logger.Info("session done", "session", path, "pdf_bytes", len(res.PDF))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Processed %d session(s) into %s\n", len(paths), batchFlags.outputDir)
	return nil
}
