package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/extdoc-hq/extdoc/internal/config"
	"github.com/extdoc-hq/extdoc/internal/extract"
	"github.com/extdoc-hq/extdoc/internal/links"
	"github.com/extdoc-hq/extdoc/pkg/model"
)

// parsedFile is the unresolved content of one source file
type parsedFile struct {
	File       string            `yaml:"file"`
	Classes    []*model.DocClass `yaml:"classes,omitempty"`
	Cfgs       []*model.Cfg      `yaml:"cfgs,omitempty"`
	Properties []*model.Property `yaml:"properties,omitempty"`
	Methods    []*model.Method   `yaml:"methods,omitempty"`
	Events     []*model.Event    `yaml:"events,omitempty"`
}

func parseCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Show the entities extracted from one source file, before inheritance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.LoadProjectConfig(g.dir)
			if err != nil {
				return fmt.Errorf("failed to load project config: %w", err)
			}

			ex := extract.New(extract.Options{
				FunctionKeyword: conf.Docs.FunctionKeyword,
				Links: links.NewResolver(links.Options{
					BaseURL:    conf.Docs.LinkBase,
					Extension:  conf.Docs.LinkExtension,
					ShortLimit: conf.Docs.ShortLimit,
				}),
			})

			res, err := ex.ProcessFile(args[0])
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(parsedFile{
				File:       args[0],
				Classes:    res.Classes,
				Cfgs:       res.Cfgs,
				Properties: res.Properties,
				Methods:    res.Methods,
				Events:     res.Events,
			})
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	return cmd
}
