package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alliance-shipping/backoffice/internal/tracking"
)

func newTrackingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracking",
		Short: "Generate, validate and format tracking codes",
	}

	var count int
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Print new tracking codes (uniqueness is not checked)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			for i := 0; i < count; i++ {
				fmt.Fprintln(cmd.OutOrStdout(), tracking.Generate())
			}
			return nil
		},
	}
	generate.Flags().IntVarP(&count, "count", "n", 1, "number of codes to print")

	validate := &cobra.Command{
		Use:   "validate CODE...",
		Short: "Check codes against the canonical AS-0000000000 form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invalid := 0
			for _, code := range args {
				verdict := "valid"
				if !tracking.Validate(code) {
					verdict = "invalid"
					invalid++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, verdict)
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d codes invalid", invalid, len(args))
			}
			return nil
		},
	}

	format := &cobra.Command{
		Use:   "format CODE...",
		Short: "Print codes in display form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, code := range args {
				fmt.Fprintln(cmd.OutOrStdout(), tracking.Format(code))
			}
			return nil
		},
	}

	cmd.AddCommand(generate, validate, format)
	return cmd
}
