package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/mchmarny/gradepoint/pkg/config"
	"github.com/mchmarny/gradepoint/pkg/gradebook"
	"github.com/mchmarny/gradepoint/pkg/net"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

type loadedBook struct {
	Path string
	Book *gradebook.Book
}

// gradebookPaths returns the files named on the command line, the path from
// the environment, or the default gradebook in the app home dir.
func gradebookPaths(cmd *cli.Command) ([]string, error) {
	if files := cmd.StringSlice(fileFlag.Name); len(files) > 0 {
		return files, nil
	}
	if p := getConfig(cmd).Settings.Gradebook; p != "" {
		return []string{p}, nil
	}
	p, err := config.DefaultGradebookPath()
	if err != nil {
		return nil, fmt.Errorf("resolving default gradebook: %w", err)
	}
	return []string{p}, nil
}

// loadBooks reads and builds gradebooks in parallel, keeping input order.
// Remote gradebooks are fetched with client.
func loadBooks(ctx context.Context, paths []string, limit int, client *http.Client) ([]*loadedBook, error) {
	if limit < 1 {
		limit = 1
	}

	out := make([]*loadedBook, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := loadBook(ctx, p, client)
			if err != nil {
				return err
			}
			out[i] = b
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func loadBook(ctx context.Context, path string, client *http.Client) (*loadedBook, error) {
	slog.Debug("loading gradebook", "path", path)

	gb, err := readGradebook(ctx, path, client)
	if err != nil {
		return nil, err
	}
	book, err := gradebook.Build(gb)
	if err != nil {
		return nil, fmt.Errorf("building gradebook %s: %w", path, err)
	}

	slog.Debug("gradebook loaded", "path", path, "courses", len(book.Courses))
	return &loadedBook{Path: path, Book: book}, nil
}

func readGradebook(ctx context.Context, path string, client *http.Client) (*gradebook.Gradebook, error) {
	if !net.IsURL(path) {
		return gradebook.Read(path)
	}

	b, err := net.Fetch(ctx, client, path)
	if err != nil {
		return nil, err
	}
	gb, err := gradebook.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("decoding gradebook %s: %w", path, err)
	}
	return gb, nil
}

func loadFromCommand(ctx context.Context, cmd *cli.Command) ([]*loadedBook, error) {
	paths, err := gradebookPaths(cmd)
	if err != nil {
		return nil, err
	}

	cfg := getConfig(cmd)

	// the token is only looked up when something is fetched over HTTP
	var client *http.Client
	if slices.ContainsFunc(paths, net.IsURL) {
		client = net.GetHTTPClient(ctx, resolveToken(cfg.Settings))
	}
	return loadBooks(ctx, paths, cfg.Settings.Concurrency, client)
}
