package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alixdehghani/HyperMetrics/export"
	"github.com/alixdehghani/HyperMetrics/model"
	"github.com/alixdehghani/HyperMetrics/tree"
)

var generateInputs string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the configuration tree from settings, commands and the conf map",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, cleanup, err := setupLogger(cfg)
		if err != nil {
			return err
		}
		defer cleanup()
		collector := newCollector(cfg, logger)

		inputs := cfg.Inputs
		if inputs.Template == "" {
			inputs.Template = "HyperConfig.json"
		}
		if inputs.ConfMap == "" {
			inputs.ConfMap = "conf-map.json"
		}
		if inputs.Commands == "" {
			inputs.Commands = "commands.json"
		}

		var template model.ENodeBConfig
		if err := readJSON(inputPath(inputs.Template), &template); err != nil {
			return err
		}
		var confMap model.ConfMap
		if err := readJSON(inputPath(inputs.ConfMap), &confMap); err != nil {
			return err
		}
		var commands model.CommandCatalog
		if err := readJSON(inputPath(inputs.Commands), &commands); err != nil {
			return err
		}

		builder := tree.NewBuilder(logger)
		out := model.ENodeBConfig{
			NeVersion:  template.NeVersion,
			NeTypeID:   template.NeTypeID,
			NeTypeName: template.NeTypeName,
		}
		for _, category := range cfg.CategoryList() {
			var settings []model.SettingItem
			if err := readJSON(inputPath(category.SettingFile), &settings); err != nil {
				return err
			}
			configType, diagnostics := builder.Build(category.Name, category.ConfigTypeID, settings, commands, confMap)
			collector.IncTreeBuild(category.Name)
			misses := 0
			for _, diag := range diagnostics {
				if diag.MatchedCount == 1 {
					continue
				}
				misses++
				logger.Warn().
					Str("category", category.Name).
					Str("key", diag.Key).
					Int("matches", diag.MatchedCount).
					Msg("conf-map entry did not bind to exactly one node")
			}
			collector.IncBindingMiss(category.Name, misses)
			out.ConfigObjTypeList = append(out.ConfigObjTypeList, configType)
		}

		data, err := export.HyperConfig(&out)
		if err != nil {
			return err
		}
		target := filepath.Join(cfg.OutputDirectory(), export.FileHyperConfig)
		if err := writeFile(target, data); err != nil {
			return err
		}
		logger.Info().Str("file", target).Int("categories", len(out.ConfigObjTypeList)).Msg("configuration tree generated")
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateInputs, "inputs", ".", "Directory holding the generator input files")
}

func inputPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(generateInputs, name)
}
