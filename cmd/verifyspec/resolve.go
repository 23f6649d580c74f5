package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lsst/verify-sub000/naming"
	"github.com/lsst/verify-sub000/spec"
)

func resolveCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve NAME",
		Short: "Print one resolved specification document as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}

			name, err := naming.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse name %q: %w", args[0], err)
			}

			set, err := spec.LoadDirectory(cfg.Specs.Dir, logger)
			if err != nil {
				return err
			}

			doc, ok := set.Document(name)
			if !ok {
				return fmt.Errorf("specification %q not found", name)
			}

			data, err := yaml.Marshal(doc)
			if err != nil {
				return fmt.Errorf("marshal %q: %w", name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "---\n# %s\n%s", name, data)
			return nil
		},
	}
}
