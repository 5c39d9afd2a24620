package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sales-insights-go/internal/dataset"
	"sales-insights-go/internal/performance"
	"sales-insights-go/internal/scorer"
	"sales-insights-go/internal/types"
)

var version = "dev"

var (
	datasetPath string
	userFilter  string
)

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "salesreport",
	Short:   "Batch performance reports from sales activity exports",
	Long:    "salesreport rescores activities from an xlsx export and prints per-user performance summaries.",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&datasetPath, "dataset", "d", "", "Path to the xlsx activity export")
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(scoresCmd)

	reportCmd.Flags().StringVarP(&userFilter, "user", "u", "", "Report a single user instead of all")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print per-user performance summaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		activities, err := loadAndRescore()
		if err != nil {
			return err
		}

		byUser := map[string][]types.Activity{}
		for _, a := range activities {
			byUser[a.UserID] = append(byUser[a.UserID], a)
		}

		users := make([]string, 0, len(byUser))
		for u := range byUser {
			if userFilter != "" && u != userFilter {
				continue
			}
			users = append(users, u)
		}
		if len(users) == 0 {
			return fmt.Errorf("no matching users in export")
		}
		sort.Strings(users)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "USER\tACTIVITIES\tAVG SCORE\t7D\t30D\tGROWTH\tLEVEL")
		for _, u := range users {
			r := performance.Aggregate(u, byUser[u])
			fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%.1f\t%+.1f%%\t%s\n",
				r.UserID, r.ActivityCount, r.AverageActivityScore,
				r.Trends.Last7Days, r.Trends.Last30Days, r.Trends.Growth, r.Level)
		}
		return w.Flush()
	},
}

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the score breakdown for every activity in the export",
	RunE: func(cmd *cobra.Command, args []string) error {
		activities, err := loadActivities()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "USER\tTYPE\tCATEGORY\tDUR\tENG\tOUT\tFUP\tBONUS\tTOTAL\tGRADE")
		for _, a := range activities {
			s := scorer.Score(a)
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
				a.UserID, a.ActivityType, a.Category,
				s.Breakdown.Duration, s.Breakdown.Engagement, s.Breakdown.Outcomes,
				s.Breakdown.FollowUp, s.Breakdown.CategoryBonus, s.TotalScore, s.Grade)
		}
		return w.Flush()
	},
}

func loadActivities() ([]types.Activity, error) {
	path := datasetPath
	if path == "" {
		path = os.Getenv("DATASET_PATH")
	}
	if path == "" {
		return nil, fmt.Errorf("no dataset: pass --dataset or set DATASET_PATH")
	}
	return dataset.Load(path)
}

func loadAndRescore() ([]types.Activity, error) {
	activities, err := loadActivities()
	if err != nil {
		return nil, err
	}
	for i := range activities {
		activities[i].ActivityScore = scorer.Score(activities[i]).TotalScore
	}
	return activities, nil
}
