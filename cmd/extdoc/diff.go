package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/extdoc-hq/extdoc/internal/emitter"
	"github.com/extdoc-hq/extdoc/internal/verify"
)

// errOutputChanged makes `extdoc diff` exit non-zero
var errOutputChanged = errors.New("output differs from a fresh build")

func diffCmd(g *globalFlags) *cobra.Command {
	var (
		src     sourceFlags
		out     outputFlags
		against string
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Rebuild and compare with existing output",
		Long: `Rebuild the model in memory and print a unified diff against the files
in an existing output directory. Exits non-zero when they differ.`,
		Args: cobra.NoArgs,
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

			files, err := emitter.Render(e, res.Model)
			if err != nil {
				return err
			}

			dir := against
			if dir == "" {
				dir = p.outputDir()
			}

			report, err := verify.Compare(files, dir, e.FileExtension())
			if err != nil {
				return err
			}

			if report.Clean() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", dir)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), report.String())
			for _, c := range report.Changes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", c.Kind, c.File)
			}
			return fmt.Errorf("%w: %d files", errOutputChanged, len(report.Changes))
		},
	}

	src.register(cmd)
	out.register(cmd)
	cmd.Flags().StringVar(&against, "against", "", "Directory with existing output (default: the output dir)")

	return cmd
}
