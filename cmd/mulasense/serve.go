package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mulasense/finance-core/internal/api"
	"github.com/mulasense/finance-core/internal/reminder"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API and the scheduled reminder sweep",
		Long: `Serves the calculators over HTTP on server.addr and, unless
reminders.schedule is empty, runs the debtor reminder sweep on that cron
schedule.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			engine, err := newEngine()
			if err != nil {
				return err
			}
			userPhone := viper.GetString("reminders.user_phone")
			handler := api.NewHandler(engine, store, userPhone, log)

			if schedule := viper.GetString("reminders.schedule"); schedule != "" {
				sweeper := reminder.NewSweeper(store, viper.GetInt("reminders.window_days"), userPhone)
				sweeper.SetLogger(log)

				c := cron.New(cron.WithLogger(cron.PrintfLogger(log)))
				if _, err := c.AddFunc(schedule, func() {
					if _, err := sweeper.Run(ctx); err != nil {
						log.Errorf("reminder sweep failed: %v", err)
					}
				}); err != nil {
					return fmt.Errorf("invalid reminders.schedule %q: %w", schedule, err)
				}
				c.Start()
				defer c.Stop()
				log.Infof("reminder sweep scheduled: %s", schedule)
			}

			srv := &http.Server{
				Addr:         viper.GetString("server.addr"),
				Handler:      handler.Router(),
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Infof("server starting on %s", srv.Addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
				log.Info("shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
