package main

import (
	"github.com/spf13/cobra"
)

type globalFlags struct {
	config   string
	binary   string
	parallel int64
}

func newRootCommand() *cobra.Command {
	flags := new(globalFlags)

	rootCmd := &cobra.Command{
		Use:           "avweb",
		Short:         "Convert media to web formats with avconv",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.binary, "binary", "", "Transcoder binary (overrides config)")
	rootCmd.PersistentFlags().Int64VarP(&flags.parallel, "parallel", "j", 0, "Maximum concurrent transcoder processes (overrides config)")

	rootCmd.AddCommand(newConvertCommand(flags))
	rootCmd.AddCommand(newPresetsCommand())

	return rootCmd
}
