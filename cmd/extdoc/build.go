package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/extdoc-hq/extdoc/internal/emitter"
	"github.com/extdoc-hq/extdoc/internal/pipeline"
)

func buildCmd(g *globalFlags) *cobra.Command {
	var (
		src sourceFlags
		out outputFlags
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Extract documentation and write the resolved model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(g.dir, &src, &out)
			if err != nil {
				return err
			}

			e, err := emitter.NewRegistry().Get(p.conf.Output.Format)
			if err != nil {
				return err
			}

			res, err := p.run(cmd.Context(), &src, nil)
			if err != nil {
				return err
			}

			files, err := emitter.Write(e, res.Model, p.outputDir())
			if err != nil {
				return err
			}

			printSummary(cmd, res)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d files to %s\n", len(files), p.outputDir())
			return nil
		},
	}

	src.register(cmd)
	out.register(cmd)

	return cmd
}

func printSummary(cmd *cobra.Command, res *pipeline.Result) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Run %s: %d files, %d classes, %d entities\n",
		res.RunID, res.Stats.Files, res.Stats.Classes, res.Stats.Entities)
	for _, fe := range res.FileErrors {
		fmt.Fprintf(w, "  unreadable: %s\n", fe.Error())
	}
}
