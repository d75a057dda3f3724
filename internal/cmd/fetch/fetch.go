package fetch

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"rally_timecomp/internal/cmd/util"
	"rally_timecomp/internal/config"
	"rally_timecomp/internal/feed"
	"rally_timecomp/internal/log"
)

func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "downloads the season and uid files into the data dir",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := util.DataFiles()
			if err != nil {
				return err
			}
			f := &feed.Fetcher{
				BaseURL: config.BaseURL,
				Dir:     config.DataDir,
				Client:  &http.Client{Timeout: config.FetchTimeout},
			}
			if err := f.Fetch(cmd.Context(), files); err != nil {
				return err
			}
			log.Info("data files up to date",
				log.String("dir", config.DataDir),
				log.Int("files", len(files)))
			return nil
		},
	}
	cmd.Flags().StringVar(&config.BaseURL,
		"base-url",
		config.DefaultBaseURL,
		"location the data files are published at")
	cmd.Flags().DurationVar(&config.FetchTimeout,
		"timeout",
		30*time.Second,
		"timeout for a single download")
	return cmd
}
