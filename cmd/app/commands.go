package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Eloquas/Eloverit-sub002/internal/catalog"
	"github.com/Eloquas/Eloverit-sub002/internal/clock"
	"github.com/Eloquas/Eloverit-sub002/internal/domain"
	"github.com/Eloquas/Eloverit-sub002/internal/progression"
	"github.com/Eloquas/Eloverit-sub002/internal/worker"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(decayCmd)

	catalogCmd.Flags().Bool("json", false, "Print the catalog as JSON")
	catalogCmd.Flags().StringP("file", "f", "", "Catalog JSON file to validate and print")
	leaderboardCmd.Flags().StringP("period", "p", string(domain.PeriodAllTime), "daily, weekly, monthly or all")
	leaderboardCmd.Flags().IntP("limit", "n", 10, "Number of entries (0 for all)")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations for the configured driver",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cleanup, err := loadConfig()
		if err != nil {
			return err
		}
		defer cleanup()

		// opening a store migrates it
		eng, err := openEngine(cmd.Context(), cfg, nil, nil)
		if err != nil {
			return err
		}
		eng.store.Close()
		fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", cfg.DBDriver)
		return nil
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the achievement catalog with derived rarity",
	Long:  "Print the built-in catalog, or validate and print a catalog file given with --file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		cat, err := catalog.Load(path)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		return printCatalog(cmd, cat.ListAll(), asJSON)
	},
}

func printCatalog(cmd *cobra.Command, defs []domain.Achievement, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		type row struct {
			domain.Achievement
			Rarity domain.Rarity `json:"rarity"`
		}
		rows := make([]row, 0, len(defs))
		for _, d := range defs {
			rows = append(rows, row{Achievement: d, Rarity: progression.Rarity(d)})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tTIER\tRARITY\tPOINTS\tCRITERION")
	for _, d := range defs {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\t%s\t%s >= %s\n",
			d.ID, d.Icon, d.Name, d.Category, d.Tier, progression.Rarity(d),
			p.Sprintf("%d", d.Points), d.Criterion.Type, p.Sprintf("%v", d.Criterion.Threshold))
	}
	return tw.Flush()
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the leaderboard straight from the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		period, _ := cmd.Flags().GetString("period")
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, cleanup, err := loadConfig()
		if err != nil {
			return err
		}
		defer cleanup()

		eng, err := openEngine(cmd.Context(), cfg, nil, nil)
		if err != nil {
			return err
		}
		defer eng.store.Close()

		entries, err := eng.svc.GetLeaderboard(cmd.Context(), domain.LeaderboardScope{
			Period: domain.LeaderboardPeriod(period),
			Limit:  limit,
		})
		if err != nil {
			return err
		}

		p := message.NewPrinter(language.English)
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "RANK\tNAME\tPOINTS\tLEVEL")
		for _, e := range entries {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", e.Rank, e.Name, p.Sprintf("%d", e.Points), e.Level)
		}
		return tw.Flush()
	},
}

var decayCmd = &cobra.Command{
	Use:   "decay-streaks",
	Short: "Reset stale streaks once, as the nightly worker would",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cleanup, err := loadConfig()
		if err != nil {
			return err
		}
		defer cleanup()

		eng, err := openEngine(cmd.Context(), cfg, nil, nil)
		if err != nil {
			return err
		}
		defer eng.store.Close()

		affected, err := worker.NewStreakDecayWorker(eng.store.Repo, nil, clock.NewRealClock()).RunOnce(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "reset %d stale streaks\n", affected)
		return nil
	},
}
