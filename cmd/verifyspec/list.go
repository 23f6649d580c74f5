package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lsst/verify-sub000/naming"
	"github.com/lsst/verify-sub000/spec"
)

func listCmd(opts *appOptions) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resolved specification names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}

			set, err := spec.LoadDirectory(cfg.Specs.Dir, logger)
			if err != nil {
				return err
			}

			if filter != "" {
				name, err := naming.Parse(filter)
				if err != nil {
					return fmt.Errorf("parse filter %q: %w", filter, err)
				}
				set = set.Subset(name)
			}

			out := cmd.OutOrStdout()
			for _, name := range set.Names() {
				fmt.Fprintln(out, name.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "under", "", "Limit output to one package or metric (dotted name)")
	return cmd
}
