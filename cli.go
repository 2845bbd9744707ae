package kebab

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

type CLIConfig struct {
	DryRun      bool
	Undo        bool
	Interactive bool
	All         bool
	Copy        bool
	NoAnimation bool
	Completion  string
}

var cfg = &CLIConfig{}

var rootCmd = &cobra.Command{
	Use:   "kebab [directory]",
	Short: "Recursively rename files and directories to kebab-case.",
	Long: `Recursively rename files and directories under a root path,
replacing spaces and underscores with hyphens and lowercasing names.
Every run records its renames in .kebab/journal.json; the most recent
run can be reverted with --undo.

Example: kebab --dry-run ~/downloads`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Completion != "" {
			return handleCompletion(cmd)
		}

		if cfg.Undo {
			if cfg.DryRun || cfg.Interactive || len(args) > 0 {
				return fmt.Errorf("error: --undo takes no directory and no other mode flags")
			}
		} else if len(args) == 0 {
			return fmt.Errorf("error: a directory argument is required (or --undo)")
		}
		if cfg.DryRun && cfg.Interactive {
			return fmt.Errorf("error: --dry-run and --interactive are mutually exclusive")
		}

		kebabCfg := &Config{
			DryRun:        cfg.DryRun,
			Undo:          cfg.Undo,
			IncludeHidden: cfg.All,
		}
		if len(args) > 0 {
			kebabCfg.Root = args[0]
		}

		app, err := NewApp(kebabCfg)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		if cfg.Interactive {
			return runInteractive(app)
		}

		ui := NewTUI(app, cfg.NoAnimation)
		if err := ui.Run(); err != nil {
			return err
		}
		return copySummaryIfRequested(app)
	},
}

// runInteractive plans first, lets the user prune the plan, then applies
// only the confirmed entries.
func runInteractive(app *App) error {
	plan, engine, err := app.Plan()
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		fmt.Println("Nothing to rename.")
		return nil
	}

	confirmed, ok, err := ReviewPlan(plan)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Aborted, nothing renamed.")
		return nil
	}

	summary, err := app.ApplyPlan(confirmed, engine)
	if err != nil {
		return err
	}
	fmt.Print(FormatSummary(summary))
	if cfg.Copy {
		return clipboard.WriteAll(summary.String())
	}
	return nil
}

func copySummaryIfRequested(app *App) error {
	if !cfg.Copy {
		return nil
	}
	return clipboard.WriteAll(app.lastSummary.String())
}

func handleCompletion(cmd *cobra.Command) error {
	switch cfg.Completion {
	case "bash":
		return cmd.Root().GenBashCompletion(os.Stdout)
	case "zsh":
		return cmd.Root().GenZshCompletion(os.Stdout)
	case "fish":
		return cmd.Root().GenFishCompletion(os.Stdout, true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
	default:
		return fmt.Errorf("unsupported shell for completion: %s", cfg.Completion)
	}
}

func init() {
	rootCmd.Flags().StringVar(&cfg.Completion, "completion", "", "Generate completion script")
	rootCmd.Flags().BoolVarP(&cfg.DryRun, "dry-run", "n", false, "Report intended renames without changing anything")
	rootCmd.Flags().BoolVarP(&cfg.Undo, "undo", "u", false, "Revert the renames of the last run")
	rootCmd.Flags().BoolVarP(&cfg.Interactive, "interactive", "i", false, "Review and confirm the plan before applying")
	rootCmd.Flags().BoolVarP(&cfg.All, "all", "a", false, "Include hidden (dot-prefixed) entries")
	rootCmd.Flags().BoolVarP(&cfg.Copy, "copy", "c", false, "Copy the summary to the clipboard")
	rootCmd.Flags().BoolVar(&cfg.NoAnimation, "no-animation", false, "Disable spinner")

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

func Execute() error {
	return rootCmd.Execute()
}
