package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/statusmap/internal/presentation/tui"
)

var validateCmd = &cobra.Command{
	Use:   "validate FROM TO",
	Short: "Classify the transition between two statuses",
	Long: `Classifies the move from FROM to TO. The command exits non-zero when the
transition is not valid, so it can guard scripts and CI jobs.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMap(cmd)
		if err != nil {
			return err
		}

		v := m.Classify(args[0], args[1])
		if err := printReport(cmd, tui.VerdictReport(v)); err != nil {
			return err
		}
		if !v.Valid() {
			return errRejected
		}
		return nil
	},
}

var sequenceCmd = &cobra.Command{
	Use:   "sequence STATUS...",
	Short: "Validate a status history step by step",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMap(cmd)
		if err != nil {
			return err
		}

		seqErr := m.ValidateSequence(args...)
		if err := printReport(cmd, tui.SequenceReport(args, seqErr)); err != nil {
			return err
		}
		if seqErr != nil {
			return errRejected
		}
		return nil
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect STATUS",
	Short: "Show the neighbours, ancestors and descendants of a status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMap(cmd)
		if err != nil {
			return err
		}
		if !m.Contains(args[0]) {
			return fmt.Errorf("status %q is not declared in %s", args[0], m.Name())
		}
		return printReport(cmd, tui.InspectReport(m, args[0]))
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report cycles, initial and terminal statuses of the map",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMap(cmd)
		if err != nil {
			return err
		}
		if err := printReport(cmd, tui.CheckReport(m)); err != nil {
			return err
		}

		acyclic, _ := cmd.Flags().GetBool("acyclic")
		if acyclic && m.HasCycle() {
			return errRejected
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(sequenceCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Bool("acyclic", false, "Fail when the map contains a cycle")
}
