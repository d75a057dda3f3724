package serve

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"rally_timecomp/internal/cmd/util"
	"rally_timecomp/internal/config"
	"rally_timecomp/internal/feed"
	"rally_timecomp/internal/log"
	"rally_timecomp/internal/web"
)

const shutdownTimeout = 10 * time.Second

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "starts the web server handing out comparison workbooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startServer(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&config.Addr,
		"addr",
		"a",
		":3000",
		"listen address")
	cmd.Flags().DurationVar(&config.ReloadInterval,
		"reload-interval",
		10*time.Minute,
		"reload the data files this often, 0 disables")
	return cmd
}

func startServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	load, err := util.Loader()
	if err != nil {
		return err
	}
	store := feed.NewStore(load)
	if err := store.Reload(ctx); err != nil {
		return err
	}
	if config.ReloadInterval > 0 {
		go store.Run(ctx, config.ReloadInterval)
	}

	srv := &http.Server{
		Addr:              config.Addr,
		Handler:           web.NewServer(store).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", log.String("addr", config.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
