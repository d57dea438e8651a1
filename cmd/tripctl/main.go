// Command tripctl reads and edits trip data straight from the store.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Black-And-White-Club/trip-scorer/app"
	authservice "github.com/Black-And-White-Club/trip-scorer/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/trip-scorer/app/modules/auth/domain"
	roundservice "github.com/Black-And-White-Club/trip-scorer/app/modules/round/application"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/config"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	if err := newCLI().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:  "tripctl",
		Usage: "inspect standings and load scorecards",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
		},
		Commands: []*cli.Command{
			{
				Name:   "standings",
				Usage:  "print the cumulative leaderboard",
				Action: withApp(runStandings),
			},
			{
				Name:      "results",
				Usage:     "print one round's result sheet",
				ArgsUsage: "<round-id>",
				Action:    withApp(runResults),
			},
			{
				Name:      "import",
				Usage:     "record a CSV or XLSX scorecard against a round",
				ArgsUsage: "<round-id> <file>",
				Action:    withApp(runImport),
			},
			{
				Name:  "token",
				Usage: "issue a bearer token for the API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "subject", Required: true, Usage: "who the token is for"},
					&cli.StringFlag{Name: "role", Value: string(authdomain.RoleScorekeeper), Usage: "viewer, scorekeeper or admin"},
					&cli.DurationFlag{Name: "ttl", Usage: "token lifetime; defaults to auth.default_ttl"},
				},
				Action: withApp(runToken),
			},
		},
	}
}

// withApp wires the modules over the configured store for one command.
// Logs go to stderr so command output stays parseable.
func withApp(action func(c *cli.Context, a *app.App) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.LoadConfig(c.String("config"))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		obs := observability.New(cfg.Observability)
		obs.Logger = observability.NewLogger(c.App.ErrWriter, "development", "warn")

		a, err := app.NewApp(c.Context, cfg, obs)
		if err != nil {
			return err
		}
		defer a.Close()
		return action(c, a)
	}
}

// unwrap turns an operation result into a value or a printable error.
func unwrap[S any](res results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if res.IsFailure() {
		return zero, *res.Failure
	}
	return *res.Success, nil
}

func runStandings(c *cli.Context, a *app.App) error {
	standings, err := unwrap(a.Modules.Leaderboard.LeaderboardService.GetLeaderboard(c.Context))
	if err != nil {
		return err
	}
	return printStandings(c.App.Writer, standings)
}

func runResults(c *cli.Context, a *app.App) error {
	if c.NArg() != 1 {
		return cli.ShowSubcommandHelp(c)
	}
	sheet, err := unwrap(a.Modules.Leaderboard.LeaderboardService.GetRoundResults(c.Context, c.Args().First()))
	if err != nil {
		return err
	}
	return printRoundSheet(c.App.Writer, sheet)
}

func runImport(c *cli.Context, a *app.App) error {
	if c.NArg() != 2 {
		return cli.ShowSubcommandHelp(c)
	}
	path := c.Args().Get(1)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scorecard: %w", err)
	}

	summary, err := unwrap(a.Modules.Round.Service.ImportScorecard(c.Context, c.Args().First(), roundservice.ImportScorecardRequest{
		FileName: filepath.Base(path),
		Data:     data,
	}))
	if err != nil {
		return err
	}
	printImportSummary(c.App.Writer, summary)
	return nil
}

func runToken(c *cli.Context, a *app.App) error {
	resp, err := unwrap(a.Modules.Auth.GetService().IssueToken(c.Context, authservice.IssueTokenRequest{
		Subject: c.String("subject"),
		Role:    authdomain.Role(c.String("role")),
		TTL:     c.Duration("ttl"),
	}))
	if errors.Is(err, authservice.ErrAuthDisabled) {
		return fmt.Errorf("%w: set auth.secret or AUTH_SECRET", err)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, resp.Token)
	fmt.Fprintf(c.App.ErrWriter, "expires %s\n", resp.ExpiresAt.Format(time.RFC3339))
	return nil
}
