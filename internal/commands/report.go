package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/revjudge/internal/analysis"
	"github.com/tildaslashalef/revjudge/internal/app"
	"github.com/tildaslashalef/revjudge/internal/utils"
)

// ReportCommand returns the CLI command for inspecting stored analysis runs
func ReportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Show stored analysis runs and their results",
		Description: "Without flags, lists all recorded analysis runs. With --run, shows " +
			"the per-PR results stored for that run.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "run",
				Aliases: []string{"r"},
				Usage:   "Run ID to show detailed results for",
			},
		},
		Action: reportAction,
	}
}

func reportAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	if runID := c.String("run"); runID != "" {
		return showRun(c, application, runID)
	}

	return listRuns(c, application)
}

func listRuns(c *cli.Context, application *app.App) error {
	runs, err := application.Repository.ListRuns(c.Context)
	if err != nil {
		utils.PrintError(fmt.Sprintf("Failed to list runs: %s", err))
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		utils.PrintInfo("No analysis runs recorded yet. Run 'revjudge analyze' first.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		completed := "in progress"
		if run.CompletedAt != nil {
			completed = run.CompletedAt.Format(time.RFC3339)
		}

		rows = append(rows, []string{
			run.ID,
			run.InputDir,
			run.Provider,
			run.Model,
			fmt.Sprintf("%d", run.TotalPRs),
			run.StartedAt.Format(time.RFC3339),
			completed,
		})
	}

	utils.PrintTable(
		[]string{"Run ID", "Input", "Provider", "Model", "PRs", "Started", "Completed"},
		rows,
		utils.TableOptions{Title: "Analysis runs"},
	)

	return nil
}

func showRun(c *cli.Context, application *app.App, runID string) error {
	run, err := application.Repository.GetRun(c.Context, runID)
	if err != nil {
		if errors.Is(err, analysis.ErrRunNotFound) {
			utils.PrintError(fmt.Sprintf("Run %s not found", runID))
			return err
		}
		utils.PrintError(fmt.Sprintf("Failed to load run: %s", err))
		return fmt.Errorf("failed to load run: %w", err)
	}

	results, err := application.Repository.GetRunResults(c.Context, runID)
	if err != nil {
		utils.PrintError(fmt.Sprintf("Failed to load run results: %s", err))
		return fmt.Errorf("failed to load run results: %w", err)
	}

	utils.PrintHeading(fmt.Sprintf("Run %s", run.ID))
	utils.PrintKeyValue("Input folder", run.InputDir)
	utils.PrintKeyValue("Provider", run.Provider)
	utils.PrintKeyValue("Model", run.Model)
	utils.PrintKeyValue("Pull requests", fmt.Sprintf("%d", run.TotalPRs))

	if len(results) == 0 {
		utils.PrintInfo("No PR results stored for this run")
		return nil
	}

	rows := make([][]string, 0, len(results))
	for _, result := range results {
		substitute := "No"
		if result.OverallAssessment.CouldSubstitute {
			substitute = "Yes"
		}

		rows = append(rows, []string{
			fmt.Sprintf("#%d", result.PRNumber),
			result.Title,
			fmt.Sprintf("%d/10", result.OverallAssessment.QualityScore),
			substitute,
			fmt.Sprintf("%.2f", result.FileOverlapScore),
			fmt.Sprintf("%d", len(result.PerFileResults)),
		})
	}

	utils.PrintTable(
		[]string{"PR", "Title", "Quality", "Could Substitute", "File Overlap", "Files Compared"},
		rows,
		utils.TableOptions{Title: "Stored PR results"},
	)

	return nil
}
