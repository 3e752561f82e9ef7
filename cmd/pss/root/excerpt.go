package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"pss/internal/excerpt"
	appLog "pss/internal/log"
)

type excerptFlags struct {
	date   int
	period string
	format string
	out    string
	watch  bool
}

func newExcerptCmd(configPath *string) *cobra.Command {
	var f excerptFlags

	cmd := &cobra.Command{
		Use:   "excerpt",
		Short: "Write the events of a day, week or month to a file",
		Long: `Write the events of the day, week or month containing --date to a file as
JSON task records or as an iCalendar feed. With --watch the excerpt is
rewritten on the excerpt.refresh cron schedule until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := writeExcerpt(*configPath, f, cmd.Flags().Changed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", green(iconOK), path)
			if !f.watch {
				return nil
			}

			s, err := openSession(*configPath)
			if err != nil {
				return err
			}

			// Root context with cancellation on SIGINT/SIGTERM.
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				select {
				case sig := <-sigCh:
					appLog.Info("signal received, shutting down", "signal", sig.String())
					cancel()
				case <-ctx.Done():
				}
			}()

			return watchExcerpt(ctx, s.cfg.Excerpt.RefreshCron, func() {
				if _, err := writeExcerpt(*configPath, f, cmd.Flags().Changed); err != nil {
					appLog.Error("excerpt refresh failed", err)
				}
			})
		},
	}

	cmd.Flags().IntVar(&f.date, "date", 0, "Any date inside the period as YYYYMMDD (default today)")
	cmd.Flags().StringVar(&f.period, "period", "", "day|week|month (default excerpt.period)")
	cmd.Flags().StringVar(&f.format, "format", "", "ics|json (default excerpt.format)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output file (default excerpt.path)")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "Keep rewriting the excerpt on the excerpt.refresh schedule")
	return cmd
}

// writeExcerpt reloads the schedule and writes one excerpt, returning the
// path written. The schedule is re-read every time so --watch picks up
// changes made by other commands.
func writeExcerpt(configPath string, f excerptFlags, changed func(string) bool) (string, error) {
	s, err := openSession(configPath)
	if err != nil {
		return "", err
	}
	cfg := s.cfg.Excerpt
	if changed("period") {
		cfg.Period = f.period
	}
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("out") {
		cfg.Path = f.out
	} else if !filepath.IsAbs(cfg.Path) {
		cfg.Path = filepath.Join(filepath.Dir(configPath), cfg.Path)
	}

	period, err := excerpt.ParsePeriod(cfg.Period)
	if err != nil {
		return "", err
	}
	format, err := excerpt.ParseFormat(cfg.Format)
	if err != nil {
		return "", err
	}
	date, err := dateFlagOrToday(f.date)
	if err != nil {
		return "", err
	}

	start, days := excerpt.Window(date, period, s.cfg.FirstWeekday())
	events, err := s.store.Events(start, days)
	if err != nil {
		return "", err
	}
	if err := excerpt.Write(cfg.Path, format, events); err != nil {
		return "", err
	}
	return cfg.Path, nil
}

// watchExcerpt runs refresh on expr until ctx is done, then waits for a
// running refresh to finish.
func watchExcerpt(ctx context.Context, expr string, refresh func()) error {
	c := cron.New()
	if _, err := c.AddFunc(expr, refresh); err != nil {
		return fmt.Errorf("invalid excerpt refresh schedule %q: %w", expr, err)
	}
	c.Start()
	appLog.Info("excerpt watch started", "refresh", expr)

	<-ctx.Done()
	<-c.Stop().Done()
	appLog.Info("excerpt watch stopped")
	return nil
}
