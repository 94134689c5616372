package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nutrigraph/nutrigraph/internal/presentation/tui"
	"github.com/nutrigraph/nutrigraph/pkg/domain"
	"github.com/nutrigraph/nutrigraph/pkg/foodflow"
)

var runCmd = &cobra.Command{
	Use:   "run [workflow]",
	Short: "Execute a workflow from the command line",
	Long:  `Runs a workflow against an initial state assembled from flags and prints the analysis report.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := foodflow.WorkflowAnalysis
		if len(args) > 0 {
			name = args[0]
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}

		workflows, err := buildWorkflows(cfg, nil, logger, nil)
		if err != nil {
			return err
		}
		wf, ok := workflows[name]
		if !ok {
			return fmt.Errorf("unknown workflow %q (available: %v)", name, foodflow.Names())
		}

		initial, err := initialStateFromFlags(cmd)
		if err != nil {
			return err
		}

		run, execErr := wf.Execute(cmd.Context(), uuid.NewString(), initial)

		markdown := tui.ReportMarkdown(run)
		if tui.IsInteractive(os.Stdout.Fd()) {
			fmt.Println(tui.StatusBadge(run.Status))
			render := tui.NewRenderer()
			if out, err := render(markdown); err == nil {
				fmt.Print(out)
			} else {
				fmt.Print(markdown)
			}
		} else {
			fmt.Print(markdown)
		}

		return execErr
	},
}

// initialStateFromFlags assembles the initial state: --state wins, the
// individual flags layer on top.
func initialStateFromFlags(cmd *cobra.Command) (domain.State, error) {
	state := domain.NewState()

	if raw, _ := cmd.Flags().GetString("state"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			return nil, fmt.Errorf("invalid --state JSON: %w", err)
		}
	}
	if image, _ := cmd.Flags().GetString("image"); image != "" {
		state[foodflow.KeyUserImage] = image
	}
	if input, _ := cmd.Flags().GetString("input"); input != "" {
		state[foodflow.KeyUserInput] = input
	}
	if profilePath, _ := cmd.Flags().GetString("profile"); profilePath != "" {
		data, err := os.ReadFile(profilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read profile: %w", err)
		}
		var profile map[string]any
		if err := json.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("invalid profile JSON: %w", err)
		}
		state[foodflow.KeyUserProfile] = profile
	}

	return state, nil
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("image", "", "Image handle to analyze (e.g. lunch.jpg)")
	runCmd.Flags().String("input", "", "Additional user information")
	runCmd.Flags().String("profile", "", "Path to a user profile JSON file")
	runCmd.Flags().String("state", "", "Initial state as inline JSON (advanced)")
}
