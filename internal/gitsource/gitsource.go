// Package gitsource fetches documentation sources from a git repository.
package gitsource

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/rs/zerolog/log"
)

// Source identifies a repository and the ref to document
type Source struct {
	URL      string
	CloneURL string
	Host     string
	Path     string // owner/name, or the directory for local repos
	Ref      string
	Local    bool
}

// Checkout is a fetched working tree
type Checkout struct {
	Path   string
	Commit string
	Ref    string
}

// ParseURL parses an HTTPS, SSH (git@host:owner/repo) or local repository
// location
func ParseURL(rawURL, ref string) (*Source, error) {
	if rawURL == "" {
		return nil, errors.New("empty repository URL")
	}

	// git@host:owner/repo.git
	if strings.HasPrefix(rawURL, "git@") {
		parts := strings.SplitN(strings.TrimPrefix(rawURL, "git@"), ":", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid SSH URL format: %s", rawURL)
		}
		repoPath := strings.Trim(strings.TrimSuffix(parts[1], ".git"), "/")
		if !validHost(parts[0]) || !validRepoPath(repoPath) {
			return nil, fmt.Errorf("invalid repo path: %s", parts[1])
		}
		return &Source{
			URL:      rawURL,
			CloneURL: fmt.Sprintf("https://%s/%s.git", parts[0], repoPath),
			Host:     parts[0],
			Path:     repoPath,
			Ref:      ref,
		}, nil
	}

	if !strings.Contains(rawURL, "://") {
		abs, err := filepath.Abs(rawURL)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path: %w", err)
		}
		return &Source{
			URL:      rawURL,
			CloneURL: abs,
			Path:     filepath.Base(abs),
			Ref:      ref,
			Local:    true,
		}, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	if parsed.Scheme == "file" {
		return ParseURL(parsed.Path, ref)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return nil, fmt.Errorf("unsupported URL scheme: %s", parsed.Scheme)
	}

	repoPath := strings.TrimSuffix(strings.Trim(parsed.Path, "/"), ".git")
	if !validHost(parsed.Host) || !validRepoPath(repoPath) {
		return nil, fmt.Errorf("invalid repo path: %s", parsed.Path)
	}

	return &Source{
		URL:      rawURL,
		CloneURL: fmt.Sprintf("%s://%s/%s.git", parsed.Scheme, parsed.Host, repoPath),
		Host:     parsed.Host,
		Path:     repoPath,
		Ref:      ref,
	}, nil
}

func validHost(host string) bool {
	return host != "" && host != "." && host != ".." && !strings.ContainsAny(host, `/\`)
}

// validRepoPath requires owner/name with at least two segments, none of
// which may step out of the cache directory
func validRepoPath(p string) bool {
	segments := strings.Split(p, "/")
	if len(segments) < 2 {
		return false
	}
	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." || strings.Contains(seg, `\`) {
			return false
		}
	}
	return true
}

// Dir returns the cache-relative directory for this source
func (s *Source) Dir() string {
	if s.Local {
		return filepath.Join("local", s.Path)
	}
	return filepath.Join(s.Host, filepath.FromSlash(s.Path))
}

// Fetcher clones repositories into a cache directory
type Fetcher struct {
	baseDir string
	token   string
}

// NewFetcher creates a fetcher. The token, if set, is sent as HTTP basic
// auth password.
func NewFetcher(baseDir, token string) *Fetcher {
	return &Fetcher{
		baseDir: baseDir,
		token:   token,
	}
}

// Fetch makes a fresh clone of src, replacing any previous checkout. The ref
// is tried as a branch, then as a tag; an empty ref means the default branch.
func (f *Fetcher) Fetch(ctx context.Context, src *Source) (*Checkout, error) {
	repoDir := filepath.Join(f.baseDir, src.Dir())
	if rel, err := filepath.Rel(f.baseDir, repoDir); err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("checkout directory %s is outside %s", repoDir, f.baseDir)
	}

	if _, err := os.Stat(repoDir); err == nil {
		log.Debug().Str("path", repoDir).Msg("removing existing checkout")
		if err := os.RemoveAll(repoDir); err != nil {
			return nil, fmt.Errorf("failed to remove existing directory: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(repoDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	log.Info().
		Str("url", src.CloneURL).
		Str("ref", src.Ref).
		Str("path", repoDir).
		Msg("cloning repository")

	opts := &git.CloneOptions{
		URL: src.CloneURL,
	}
	if !src.Local {
		opts.Depth = 1
	}
	if f.token != "" && !src.Local {
		opts.Auth = &http.BasicAuth{
			Username: "git",
			Password: f.token,
		}
	}

	repo, err := f.clone(ctx, repoDir, src.Ref, opts)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	checkout := &Checkout{
		Path:   repoDir,
		Commit: head.Hash().String(),
		Ref:    head.Name().Short(),
	}

	log.Info().
		Str("commit", checkout.Commit[:8]).
		Str("ref", checkout.Ref).
		Msg("clone complete")

	return checkout, nil
}

func (f *Fetcher) clone(ctx context.Context, dir, ref string, opts *git.CloneOptions) (*git.Repository, error) {
	if ref == "" {
		repo, err := git.PlainCloneContext(ctx, dir, false, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to clone: %w", err)
		}
		return repo, nil
	}

	candidates := []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(ref),
		plumbing.NewTagReferenceName(ref),
	}

	var lastErr error
	for _, name := range candidates {
		opts.ReferenceName = name
		opts.SingleBranch = true

		repo, err := git.PlainCloneContext(ctx, dir, false, opts)
		if err == nil {
			return repo, nil
		}
		lastErr = err
		log.Debug().Str("ref", name.String()).Err(err).Msg("ref not cloned, trying next")

		// a failed clone may leave a partial directory behind
		if err := os.RemoveAll(dir); err != nil {
			return nil, fmt.Errorf("failed to clean up after clone: %w", err)
		}
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("failed to clone ref %s: %w", ref, lastErr)
}

// DiscoverSources lists files under root whose base name matches one of the
// patterns, as slash-separated paths relative to root in sorted order. Hidden
// and dependency directories are skipped.
func DiscoverSources(root string, patterns []string) ([]string, error) {
	var files []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			name := info.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}

		for _, pattern := range patterns {
			if matched, _ := filepath.Match(pattern, info.Name()); matched {
				rel, err := filepath.Rel(root, path)
				if err != nil {
					return err
				}
				files = append(files, filepath.ToSlash(rel))
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
