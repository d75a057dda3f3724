package render

import (
	"fmt"

	"github.com/spf13/cobra"

	"rally_timecomp/internal/cmd/util"
	"rally_timecomp/internal/feed"
	"rally_timecomp/internal/log"
	"rally_timecomp/internal/report"
	"rally_timecomp/internal/xlsx"
)

type options struct {
	event      string
	driver     int
	benchmarks []int
	out        string
}

func NewRenderCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "writes the comparison workbook for one event to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.event, "event", "",
		"event as season|slug")
	cmd.Flags().IntVar(&opts.driver, "driver", 0,
		"competitor number to compare")
	cmd.Flags().IntSliceVar(&opts.benchmarks, "benchmark", nil,
		"competitor numbers to compare against")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "",
		"output file (default is <slug>_<driver>.xlsx)")
	_ = cmd.MarkFlagRequired("event")
	_ = cmd.MarkFlagRequired("driver")
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	season, slug, err := feed.ParseEventKey(opts.event)
	if err != nil {
		return err
	}
	load, err := util.Loader()
	if err != nil {
		return err
	}
	snap, err := load(cmd.Context())
	if err != nil {
		return err
	}
	r, ok := snap.Rally(season, slug)
	if !ok {
		return fmt.Errorf("no event %s in season %s", slug, season)
	}

	wb, err := report.BuildSpreadsheet(r, snap.Identities, opts.driver, opts.benchmarks)
	if err != nil {
		return err
	}
	out := opts.out
	if out == "" {
		out = fmt.Sprintf("%s_%d.xlsx", slug, opts.driver)
	}
	if err := xlsx.Save(out, wb); err != nil {
		return err
	}
	log.Info("workbook written",
		log.String("file", out),
		log.String("event", r.Title),
		log.Int("sheets", len(wb.Sheets)))
	return nil
}
