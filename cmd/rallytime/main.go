// Package main provides the CLI entrypoint for rallytime.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/SofianeSadi/rally-time/internal/config"
	"github.com/SofianeSadi/rally-time/internal/duration"
	"github.com/SofianeSadi/rally-time/internal/model"
	"github.com/SofianeSadi/rally-time/internal/plan"
	"github.com/SofianeSadi/rally-time/internal/planui"
	"github.com/SofianeSadi/rally-time/internal/store"
)

const (
	defaultGap       = 2
	defaultPrep      = 300
	defaultReadiness = 40
	defaultLead      = 420
	defaultSetup     = "default"
)

var (
	rootSetupName string
	rootLabel     string

	planSetupName string
	planLabel     string
	planMarches   []string
	planAt        string

	gapSec       int
	prepSec      int
	readinessSec int
	leadSec      int

	setupsDelete string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rallytime",
		Short:         "Rally timing planner",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlannerCmd,
	}

	rootCmd.Flags().StringVar(&rootSetupName, "setup", defaultSetup, "setup to load at startup")
	rootCmd.Flags().StringVar(&rootLabel, "label", "", "target label for instructions")
	addConstantFlags(rootCmd)

	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newSetupsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addConstantFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&gapSec, "gap", defaultGap, "seconds between consecutive arrivals")
	cmd.Flags().IntVar(&prepSec, "prep", defaultPrep, "rally preparation countdown in seconds")
	cmd.Flags().IntVar(&readinessSec, "readiness", defaultReadiness, "minimum lead before any rally start in seconds")
	cmd.Flags().IntVar(&leadSec, "lead", defaultLead, "fixed-target mode minimum lead in seconds")
}

func resolvePlanConfig(cmd *cobra.Command, fileCfg config.FileConfig) (model.PlanConfig, error) {
	applyIntConfig(cmd, "gap", &gapSec, fileCfg.Plan.Gap)
	applyIntConfig(cmd, "prep", &prepSec, fileCfg.Plan.Prep)
	applyIntConfig(cmd, "readiness", &readinessSec, fileCfg.Plan.Readiness)
	applyIntConfig(cmd, "lead", &leadSec, fileCfg.Plan.Lead)

	cfg := model.PlanConfig{
		GapSec:       gapSec,
		PrepSec:      prepSec,
		ReadinessSec: readinessSec,
		LeadSec:      leadSec,
	}
	if err := validatePlanConfig(cfg); err != nil {
		return model.PlanConfig{}, err
	}
	return cfg, nil
}

func runPlannerCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "setup", &rootSetupName, fileCfg.Setup.Name)
	applyStringConfig(cmd, "label", &rootLabel, fileCfg.Setup.Label)
	cfg, err := resolvePlanConfig(cmd, fileCfg)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	setup, err := st.LoadSetup(context.Background(), rootSetupName)
	if err != nil {
		// A broken snapshot should not block planning.
		logErrf("failed to load setup %q, starting empty: %v\n", rootSetupName, err)
		setup = model.Setup{}
	}
	if cmd.Flags().Changed("label") || setup.TargetLabel == "" {
		setup.TargetLabel = rootLabel
	}

	ui := planui.NewModel(st, clockwork.NewRealClock(), cfg, rootSetupName, setup)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print a rally plan without the TUI",
		Args:  cobra.NoArgs,
		RunE:  runPlanCmd,
	}
	cmd.Flags().StringArrayVar(&planMarches, "march", nil, "march as NAME=M:SS or M:SS (repeatable; overrides --setup)")
	cmd.Flags().StringVar(&planSetupName, "setup", defaultSetup, "saved setup to plan from")
	cmd.Flags().StringVar(&planAt, "at", "", "target arrival time (HH:MM or HH:MM:SS UTC)")
	cmd.Flags().StringVar(&planLabel, "label", "", "target label for instructions")
	addConstantFlags(cmd)
	return cmd
}

func runPlanCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "setup", &planSetupName, fileCfg.Setup.Name)
	applyStringConfig(cmd, "label", &planLabel, fileCfg.Setup.Label)
	cfg, err := resolvePlanConfig(cmd, fileCfg)
	if err != nil {
		return err
	}

	label := planLabel
	var members []model.Participant
	if len(planMarches) > 0 {
		members = marchParticipants(planMarches)
	} else {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		setup, err := st.LoadSetup(context.Background(), planSetupName)
		if err != nil {
			return fmt.Errorf("failed to load setup %q: %w", planSetupName, err)
		}
		members = setup.Members
		if !cmd.Flags().Changed("label") && setup.TargetLabel != "" {
			label = setup.TargetLabel
		}
	}

	entries := plan.RosterEntries(members)
	now := clockwork.NewRealClock().Now()

	var built *model.Plan
	if planAt != "" {
		target, err := duration.ParseClock(planAt, now)
		if err != nil {
			return err
		}
		built, err = plan.BuildAtTarget(entries, label, cfg, now, target)
		if err != nil {
			return err
		}
	} else {
		built, err = plan.Build(entries, label, cfg, now)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	width := stdoutWidth()
	for _, line := range plan.PlanTable(built) {
		if width > 0 {
			line = truncateLine(line, width)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintln(out, plan.ClipboardBlock(built, cfg)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func marchParticipants(specs []string) []model.Participant {
	members := make([]model.Participant, 0, len(specs))
	for _, spec := range specs {
		name := ""
		durText := spec
		if i := strings.Index(spec, "="); i >= 0 {
			name = strings.TrimSpace(spec[:i])
			durText = spec[i+1:]
		}
		members = append(members, model.Participant{
			Name:         name,
			MarchSeconds: strconv.Itoa(duration.ParseColon(durText)),
		})
	}
	return members
}

func stdoutWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

func newSetupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setups",
		Short: "List saved setups",
		Args:  cobra.NoArgs,
		RunE:  runSetupsCmd,
	}
	cmd.Flags().StringVar(&setupsDelete, "delete", "", "delete the named setup")
	return cmd
}

func runSetupsCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if setupsDelete != "" {
		if err := st.DeleteSetup(ctx, setupsDelete); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "deleted setup %q\n", setupsDelete); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	infos, err := st.ListSetups(ctx)
	if err != nil {
		return fmt.Errorf("failed to list setups: %w", err)
	}
	if len(infos) == 0 {
		logErrln("no setups saved yet; run rallytime to create one")
		return nil
	}
	for _, info := range infos {
		updated := "unknown"
		if !info.UpdatedAt.IsZero() {
			updated = info.UpdatedAt.UTC().Format("2006-01-02 15:04")
		}
		line := fmt.Sprintf("%-24s %3d members  updated %s", info.Name, info.Members, updated)
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# rallytime configuration
# Uncomment a value to enable it. CLI flags override config values.

[plan]
# gap = %d         # Seconds between consecutive arrivals
# prep = %d      # Rally preparation countdown in seconds
# readiness = %d  # Minimum lead before any rally start in seconds
# lead = %d      # Fixed-target mode minimum lead in seconds

[setup]
# name = %q  # Setup loaded at startup
# label = ""        # Default target label
`,
		defaultGap,
		defaultPrep,
		defaultReadiness,
		defaultLead,
		defaultSetup,
	)
}

func validatePlanConfig(cfg model.PlanConfig) error {
	if cfg.GapSec < 0 {
		return fmt.Errorf("--gap must be >= 0")
	}
	if cfg.PrepSec < 0 {
		return fmt.Errorf("--prep must be >= 0")
	}
	if cfg.ReadinessSec < 0 {
		return fmt.Errorf("--readiness must be >= 0")
	}
	if cfg.LeadSec < 0 {
		return fmt.Errorf("--lead must be >= 0")
	}
	return nil
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
