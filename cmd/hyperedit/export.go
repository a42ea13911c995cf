package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alixdehghani/HyperMetrics/export"
	"github.com/alixdehghani/HyperMetrics/measure"
	"github.com/alixdehghani/HyperMetrics/model"
	"github.com/alixdehghani/HyperMetrics/store"
)

var exportCmd = &cobra.Command{
	Use:   "export [measure.json]",
	Short: "Render every derived measurement artifact",
	Long: `Render the derived measurement files (properties, eNodeB descriptor,
kpi setting, default formulas, OSS scaffold) into the output directory. The
measurement document is read from the given file, or from the snapshot store
when no file is named.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		var doc model.MeasureType
		if len(args) == 1 {
			if err := readJSON(args[0], &doc); err != nil {
				return err
			}
		} else {
			snapshots, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer snapshots.Close()
			data, err := snapshots.Load(context.Background(), store.KeyHyperMeasure)
			if err != nil {
				return err
			}
			if data == nil {
				return fmt.Errorf("no measurement document: pass a file or save a snapshot first")
			}
			if err := readJSONBytes(data, &doc); err != nil {
				return err
			}
		}

		normalizer := measure.NewNormalizer(logger)
		normalizer.Normalize(&doc)
		collector.IncNormalization()

		outDir := cfg.OutputDirectory()
		write := func(name string, data []byte, err error) error {
			if err != nil {
				return err
			}
			if err := writeFile(filepath.Join(outDir, name), data); err != nil {
				return err
			}
			collector.IncExportRender(name)
			logger.Info().Str("file", name).Msg("artifact rendered")
			return nil
		}

		hyper, err := export.HyperMeasure(&doc)
		if err := write(export.FileHyperCounterKpi, hyper, err); err != nil {
			return err
		}
		if err := write(export.FileProperties, export.Properties(&doc), nil); err != nil {
			return err
		}
		noRealtime, err := export.NoRealtime(&doc, normalizer)
		if err := write(export.FileNoRealtime, noRealtime, err); err != nil {
			return err
		}
		kpiSetting, err := export.KPISetting(&doc)
		if err := write(export.FileKpiSetting, kpiSetting, err); err != nil {
			return err
		}
		formulas, err := export.DefaultFormulas(&doc)
		if err := write(export.FileDefaultFormulas, formulas, err); err != nil {
			return err
		}
		oss, err := export.OSSTesting(&doc)
		if err := write(export.FileOSSConfig, oss, err); err != nil {
			return err
		}
		return nil
	},
}
