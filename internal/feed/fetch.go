package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"rally_timecomp/internal/log"
)

const maxParallelDownloads = 4

// Fetcher downloads the published data files into Dir.
type Fetcher struct {
	BaseURL string
	Dir     string
	Client  *http.Client
}

// Fetch downloads every named file. Each file is written to a temporary
// name first and renamed once complete.
func (f *Fetcher) Fetch(ctx context.Context, names []string) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelDownloads)
	for _, name := range names {
		name := name
		g.Go(func() error {
			return f.fetchOne(gctx, name)
		})
	}
	return g.Wait()
}

func (f *Fetcher) fetchOne(ctx context.Context, name string) error {
	url := strings.TrimSuffix(f.BaseURL, "/") + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %s", name, resp.Status)
	}

	tmp, err := os.CreateTemp(f.Dir, "."+filepath.Base(name)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("fetch %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(f.Dir, filepath.Base(name))); err != nil {
		return err
	}
	log.Info("downloaded", log.String("file", name), log.Int64("bytes", n))
	return nil
}
