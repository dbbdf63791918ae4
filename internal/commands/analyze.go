package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/revjudge/internal/analysis"
	"github.com/tildaslashalef/revjudge/internal/app"
	"github.com/tildaslashalef/revjudge/internal/llm"
	"github.com/tildaslashalef/revjudge/internal/loggy"
	"github.com/tildaslashalef/revjudge/internal/pr"
	"github.com/tildaslashalef/revjudge/internal/report"
	"github.com/tildaslashalef/revjudge/internal/sentiment"
	"github.com/tildaslashalef/revjudge/internal/utils"
)

// AnalyzeCommand returns the CLI command for comparing human and AI reviews
func AnalyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Compare human and AI reviews across exported pull requests",
		Description: "Loads exported PR JSON files from a folder, compares the human review " +
			"comments against the AI review on each file, scores sentiment agreement and " +
			"content overlap, and produces an overall assessment per pull request.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "folder",
				Aliases: []string{"f"},
				Usage:   "Folder containing exported PR JSON files",
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   "LLM provider to use (openai or claude, default: configured provider)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path for the detailed results JSON (default: configured results path)",
			},
			&cli.BoolFlag{
				Name:  "no-save",
				Usage: "Skip persisting the run and its results to the database",
			},
		},
		Action: analyzeAction,
	}
}

func analyzeAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	cfg := application.Config
	logger := loggy.GetGlobalLogger()

	folder := c.String("folder")
	if folder == "" {
		folder = cfg.Analysis.InputDir
	}

	client, clientType, err := resolveClient(application, c.String("provider"))
	if err != nil {
		utils.PrintError(fmt.Sprintf("Failed to resolve LLM client: %s", err))
		return err
	}
	model := application.LLM.DefaultModel(clientType)

	utils.PrintHeading("Analyzing pull request reviews")
	utils.PrintKeyValue("Input folder", folder)
	utils.PrintKeyValue("LLM provider", string(clientType))
	utils.PrintKeyValue("Model", model)

	pullRequests, err := pr.LoadDir(folder)
	if err != nil {
		utils.PrintError(fmt.Sprintf("Failed to load PR files: %s", err))
		return fmt.Errorf("failed to load PR files: %w", err)
	}
	utils.PrintInfo(fmt.Sprintf("Loaded %d pull request(s)", len(pullRequests)))

	judge := analysis.NewJudge(client, cfg.Analysis, logger)
	assessor := analysis.NewAssessor(client, cfg.Analysis, logger)
	service := analysis.NewService(sentiment.NewKeywordClassifier(), judge, assessor, logger)

	save := !c.Bool("no-save")

	run := analysis.NewRun(folder, string(clientType), model)
	run.TotalPRs = len(pullRequests)
	if save {
		if err := application.Repository.SaveRun(c.Context, run); err != nil {
			utils.PrintError(fmt.Sprintf("Failed to record analysis run: %s", err))
			return fmt.Errorf("failed to record analysis run: %w", err)
		}
	}

	for _, pullRequest := range pullRequests {
		utils.PrintInfo(fmt.Sprintf("Analyzing PR #%d: %s", pullRequest.Number, pullRequest.Title))

		result := service.AnalyzePR(c.Context, pullRequest)

		if save {
			if err := application.Repository.SaveResult(c.Context, run.ID, result); err != nil {
				loggy.Warn("Failed to persist PR result", "run_id", run.ID, "pr_number", result.PRNumber, "error", err)
			}
		}
	}

	if save {
		if err := application.Repository.CompleteRun(c.Context, run); err != nil {
			loggy.Warn("Failed to mark analysis run complete", "run_id", run.ID, "error", err)
		}
	}

	metrics := service.Metrics()
	report.Render(metrics)

	resultsPath := c.String("output")
	if resultsPath == "" {
		resultsPath = cfg.Analysis.ResultsPath
	}

	if err := report.WriteJSON(metrics, resultsPath); err != nil {
		utils.PrintWarning(fmt.Sprintf("Failed to write results file: %s", err))
	} else {
		utils.PrintSuccess("Results written to " + resultsPath)
	}

	utils.PrintSuccess(fmt.Sprintf("Analysis run %s complete", run.ID))
	return nil
}

// resolveClient picks the requested provider, or the configured default
// when none is given
func resolveClient(application *app.App, provider string) (llm.Client, llm.ClientType, error) {
	if provider == "" {
		return application.LLM.GetDefaultClient()
	}

	clientType := llm.ClientType(provider)
	client, err := application.LLM.GetClient(clientType)
	if err != nil {
		return nil, "", err
	}

	return client, clientType, nil
}
