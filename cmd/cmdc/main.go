package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/matheus3301/cmdc/internal/app"
	"github.com/matheus3301/cmdc/internal/config"
	"github.com/matheus3301/cmdc/internal/profile"
	"github.com/matheus3301/cmdc/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var (
	// Version information, set at build time.
	version = "dev"
	commit  = "none"
	date    = "unknown"

	profileName string
	configPath  string
	catalogPath string
	jsonOut     bool
	limit       int
)

const lifecycleTimeout = 15 * time.Second

var rootCmd = &cobra.Command{
	Use:   "cmdc",
	Short: "Terminal command center",
	Long:  `A keyboard-driven command palette: search items, open their applications and run their buttons.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(func(name string, svc app.Services) error {
			return tui.NewApp(tui.Deps{
				Profile:    name,
				Transport:  app.Transport(svc),
				Catalog:    svc.Catalog,
				Dispatcher: svc.Dispatcher,
				History:    svc.DB,
				Bus:        svc.Bus,
				Keys:       svc.Keys,
				Logger:     svc.Logger.Named("tui"),
			}).Run()
		})
	},
}

var itemsCmd = &cobra.Command{
	Use:   "items [query]",
	Short: "Search the catalog and print the scored results",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(func(_ string, svc app.Services) error {
			results := svc.Catalog.Search(strings.Join(args, " "))
			if jsonOut {
				return outputJSON(results)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "SCORE\tUUID\tTITLE\tTYPE")
			for _, it := range results {
				_, _ = fmt.Fprintf(w, "%.2f\t%s\t%s\t%s\n", it.Score, it.UUID, it.Title, it.ItemType)
			}
			return w.Flush()
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print recently visited pages and command runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(func(_ string, svc app.Services) error {
			pages, err := svc.DB.RecentPages(limit)
			if err != nil {
				return err
			}
			runs, err := svc.DB.ListActionRuns(limit)
			if err != nil {
				return err
			}
			if jsonOut {
				return outputJSON(map[string]any{"pages": pages, "runs": runs})
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "PATH\tTITLE\tVISITS\tLAST")
			for _, p := range pages {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", p.Path, p.Title, p.Visits, formatMillis(p.VisitedAt))
			}
			_, _ = fmt.Fprintln(w, "\nRUN\tBUTTON\tSTATUS\tSTARTED")
			for _, r := range runs {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.ButtonLabel, r.Status, formatMillis(r.StartedAt))
			}
			return w.Flush()
		})
	},
}

var clearHistoryCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the page history of the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(func(name string, svc app.Services) error {
			n, err := svc.DB.ClearPageHistory()
			if err != nil {
				return err
			}
			fmt.Printf("Cleared %d pages from profile %q\n", n, name)
			return nil
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cmdc version %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "profile name (overrides config default)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "item catalog path (overrides config)")

	itemsCmd.Flags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	historyCmd.Flags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum rows per table")

	historyCmd.AddCommand(clearHistoryCmd)
	rootCmd.AddCommand(itemsCmd, historyCmd, versionCmd)
}

// withServices starts the profile's components, runs fn and stops them.
// Logs go to the profile log file only; the TUI owns the terminal.
func withServices(fn func(name string, svc app.Services) error) error {
	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = profile.ConfigPath()
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", cfgPath, err)
	}
	name := profile.Resolve(profileName, cfg)
	if err := profile.ValidateName(name); err != nil {
		return err
	}

	var svc app.Services
	fxApp := fx.New(
		app.Module(app.Params{
			Profile:     name,
			ConfigPath:  cfgPath,
			CatalogPath: catalogPath,
		}),
		fx.Populate(&svc),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
	)
	if err := fxApp.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), lifecycleTimeout)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		return err
	}

	runErr := fn(name, svc)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), lifecycleTimeout)
	defer stopCancel()
	if err := fxApp.Stop(stopCtx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
