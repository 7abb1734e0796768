package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Afrawles/sprintdigest/internal/config"
	"github.com/Afrawles/sprintdigest/internal/digest"
	"github.com/Afrawles/sprintdigest/internal/gitlab"
	"github.com/Afrawles/sprintdigest/internal/jira"
	"github.com/Afrawles/sprintdigest/internal/logger"
	"github.com/Afrawles/sprintdigest/internal/report"
)

var (
	verbose    bool
	xlsxOutput string
)

var rootCmd = &cobra.Command{
	Use:   "sprintdigest <config.yaml>",
	Short: "Generate a daily stand-up digest from Jira and GitLab",
	Long: `sprintdigest aggregates the active sprint's state, fresh comments,
cross-team dependencies and merge request statistics into a stand-up digest.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runDigest,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	listCmd = &cobra.Command{
		Use:   "list <config.yaml>",
		Short: "List all sprint issues grouped by assignee, with statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  runList,
	}

	csvCmd = &cobra.Command{
		Use:   "csv <config.yaml>",
		Short: "Export the team listing as CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  runCSV,
	}

	xlsxCmd = &cobra.Command{
		Use:   "xlsx <config.yaml>",
		Short: "Export the team listing as an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runXLSX,
	}
)

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	xlsxCmd.Flags().StringVarP(&xlsxOutput, "output", "o", "sprint_digest.xlsx", "Workbook output path")

	rootCmd.AddCommand(listCmd, csvCmd, xlsxCmd)
}

func setup(configPath string) (*digest.Engine, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log := logger.New(verbose)
	tracker := jira.NewClient(cfg.JiraBaseURL, cfg.Email, cfg.APIToken, log)
	scm := gitlab.NewClient(cfg.GitLab.BaseURL, cfg.GitLab.Token, log)
	return digest.New(tracker, scm, cfg, log), nil
}

func runDigest(cmd *cobra.Command, args []string) error {
	engine, err := setup(args[0])
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	bar := newSpinner("Resolving active sprint")
	sprint, err := engine.ActiveSprint(ctx)
	finishBar(bar)
	if err != nil {
		return err
	}
	if sprint == nil {
		fmt.Println("No active sprint found.")
		return nil
	}

	bar = newSpinner("Building digest")
	d, err := engine.BuildDigest(ctx, sprint)
	finishBar(bar)
	if err != nil {
		return err
	}

	return report.WriteDigest(os.Stdout, d)
}

// teamListing runs the shared fetch path of the list, csv and xlsx modes.
// A nil listing with a nil error means no active sprint.
func teamListing(cmd *cobra.Command, configPath string) (*report.TeamListing, error) {
	engine, err := setup(configPath)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()

	bar := newSpinner("Resolving active sprint")
	sprint, err := engine.ActiveSprint(ctx)
	finishBar(bar)
	if err != nil {
		return nil, err
	}
	if sprint == nil {
		fmt.Println("No active sprint found.")
		return nil, nil
	}

	bar = newSpinner("Fetching sprint issues")
	listing, err := engine.BuildTeamListing(ctx, sprint)
	finishBar(bar)
	return listing, err
}

func runList(cmd *cobra.Command, args []string) error {
	listing, err := teamListing(cmd, args[0])
	if err != nil || listing == nil {
		return err
	}
	return report.WriteTeamListing(os.Stdout, listing)
}

func runCSV(cmd *cobra.Command, args []string) error {
	listing, err := teamListing(cmd, args[0])
	if err != nil || listing == nil {
		return err
	}
	return report.WriteCSV(os.Stdout, listing)
}

func runXLSX(cmd *cobra.Command, args []string) error {
	listing, err := teamListing(cmd, args[0])
	if err != nil || listing == nil {
		return err
	}
	if err := report.NewExcelExporter(xlsxOutput).Export(listing); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Workbook saved to %s\n", xlsxOutput)
	return nil
}
