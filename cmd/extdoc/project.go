package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/extdoc-hq/extdoc/internal/config"
	"github.com/extdoc-hq/extdoc/internal/gitsource"
	"github.com/extdoc-hq/extdoc/internal/manifest"
	"github.com/extdoc-hq/extdoc/internal/pipeline"
)

// sourceFlags select where sources come from and how they are processed
type sourceFlags struct {
	manifest string
	repo     string
	ref      string
	workers  int
}

// outputFlags override the project's output settings
type outputFlags struct {
	out    string
	format string
}

// project bundles everything a command needs to run the pipeline
type project struct {
	dir  string
	env  *config.Config
	conf *config.ProjectConfig
}

func loadProject(dir string, src *sourceFlags, out *outputFlags) (*project, error) {
	env, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	conf, err := config.LoadProjectConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	overrides := &config.ProjectConfig{}
	if src != nil {
		overrides.Manifest = src.manifest
		if src.workers > 0 {
			env.Workers = src.workers
		}
	}
	if out != nil {
		overrides.Output.Dir = out.out
		overrides.Output.Format = out.format
	}
	conf.Merge(overrides)

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &project{dir: dir, env: env, conf: conf}, nil
}

// outputDir resolves the configured output directory against the project dir
func (p *project) outputDir() string {
	if filepath.IsAbs(p.conf.Output.Dir) {
		return p.conf.Output.Dir
	}
	return filepath.Join(p.dir, p.conf.Output.Dir)
}

// loadManifest reads the manifest from the project dir, or from a fresh
// checkout when a repository is given. A checkout without a manifest is
// documented from all of its .js files.
func (p *project) loadManifest(ctx context.Context, src *sourceFlags) (*manifest.Manifest, error) {
	root := p.dir

	if src != nil && src.repo != "" {
		source, err := gitsource.ParseURL(src.repo, src.ref)
		if err != nil {
			return nil, err
		}

		checkout, err := gitsource.NewFetcher(p.env.CacheDir, p.env.GitToken).Fetch(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", src.repo, err)
		}
		root = checkout.Path

		path := filepath.Join(root, p.conf.Manifest)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			files, err := gitsource.DiscoverSources(root, []string{"*.js"})
			if err != nil {
				return nil, err
			}
			log.Info().Int("files", len(files)).Msg("no manifest in repository, documenting all .js files")
			return manifest.FromFiles(root, files...), nil
		}
	}

	path := p.conf.Manifest
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	return manifest.Load(path)
}

// run loads the manifest and executes the pipeline
func (p *project) run(ctx context.Context, src *sourceFlags, metrics *pipeline.Metrics) (*pipeline.Result, error) {
	m, err := p.loadManifest(ctx, src)
	if err != nil {
		return nil, err
	}

	opts := pipeline.OptionsFromConfig(p.conf, p.env.Workers)
	opts.Metrics = metrics

	return pipeline.New(opts).Run(ctx, m)
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.manifest, "manifest", "m", "", "Manifest listing the source files (default from .extdoc.yaml)")
	cmd.Flags().StringVar(&s.repo, "repo", "", "Git repository to document instead of the project dir")
	cmd.Flags().StringVar(&s.ref, "ref", "", "Branch or tag to check out with --repo")
	cmd.Flags().IntVarP(&s.workers, "workers", "w", 0, "Files scanned in parallel (default from EXTDOC_WORKERS)")
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "Output directory (default from .extdoc.yaml)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "Output format: json or yaml")
}
