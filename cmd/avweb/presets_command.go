package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"source.hodakov.me/hdkv/avweb/internal/domains/converter"
)

func newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List output kinds and their transcoder flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := presetRows()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Kind", "Flags"}, rows))

			return nil
		},
	}
}

func presetRows() ([][]string, error) {
	kinds := converter.Kinds()
	rows := make([][]string, 0, len(kinds))

	for _, kind := range kinds {
		flags, err := converter.Preset(kind)
		if err != nil {
			return nil, err
		}

		rows = append(rows, []string{string(kind), strings.Join(flags, " ")})
	}

	return rows, nil
}
