package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/extdoc-hq/extdoc/pkg/model"
)

func treeCmd(g *globalFlags) *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the package tree of the documented classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(g.dir, &src, nil)
			if err != nil {
				return err
			}

			res, err := p.run(cmd.Context(), &src, nil)
			if err != nil {
				return err
			}

			printTree(cmd.OutOrStdout(), res.Model.Tree)
			return nil
		},
	}

	src.register(cmd)

	return cmd
}

// printTree writes packages with a trailing slash, each followed by its
// classes and then its subpackages
func printTree(w io.Writer, tree *model.Package) {
	if tree == nil {
		return
	}
	tree.Walk(func(pkg *model.Package, depth int) {
		if depth > 0 {
			fmt.Fprintf(w, "%s%s/\n", strings.Repeat("  ", depth-1), pkg.Name)
		}
		for _, cls := range pkg.Classes {
			fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), cls.ShortClassName)
		}
	})
}
