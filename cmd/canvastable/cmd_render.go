package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rudderlabs/rudder-go-kit/logger"

	"github.com/lvillar/canvastable/tabletpl"
)

// outputPath maps a document path to the PNG it renders to. An empty dir
// keeps the image next to the document.
func outputPath(src, dir string) string {
	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + ".png"
	if dir == "" {
		return filepath.Join(filepath.Dir(src), name)
	}
	return filepath.Join(dir, name)
}

// runRenderCore renders every document with at most concurrency renders in
// flight and returns the written images in argument order. The first
// failure cancels the remaining renders.
func runRenderCore(ctx context.Context, env *cliEnv, srcs []string, outDir string, concurrency int) ([]string, error) {
	if concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1, got %d", concurrency)
	}
	dsts := lo.Map(srcs, func(src string, _ int) string { return outputPath(src, outDir) })
	if dups := lo.FindDuplicates(dsts); len(dups) > 0 {
		return nil, fmt.Errorf("documents render to the same file: %s", strings.Join(dups, ", "))
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, src := range srcs {
		src, dst := src, dsts[i]
		g.Go(func() error {
			return renderFile(gCtx, env, src, dst)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dsts, nil
}

func renderFile(ctx context.Context, env *cliEnv, src, dst string) error {
	start := time.Now()
	doc, err := tabletpl.Load(src)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	err = tabletpl.RenderDocument(ctx, f, doc, env.tableOptions()...)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("%s: %w", src, err)
	}

	env.log.Infon("Rendered table",
		logger.NewStringField("document", src),
		logger.NewStringField("image", dst),
		logger.NewDurationField("elapsed", time.Since(start)),
	)
	return nil
}

func init() {
	var (
		outDir      string
		concurrency int
	)
	renderCmd := &cobra.Command{
		Use:   "render DOCUMENT...",
		Short: "Render table documents to PNG images",
		Long:  "Render each YAML or JSON table document to a PNG named after it, next to the document or in --out-dir.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := loadEnv(true)
			if !cmd.Flags().Changed("concurrency") {
				concurrency = env.conf.GetInt("concurrency", concurrency)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			written, err := runRenderCore(ctx, env, args, outDir, concurrency)
			if err != nil {
				return err
			}
			for _, p := range written {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	renderCmd.Flags().StringVarP(&outDir, "out-dir", "d", "", "Directory for the images (default: next to each document)")
	renderCmd.Flags().IntVarP(&concurrency, "concurrency", "j", 4, "Maximum number of documents rendered at once")
	rootCmd.AddCommand(renderCmd)
}
