package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alixdehghani/HyperMetrics/measure"
	"github.com/alixdehghani/HyperMetrics/model"
)

var checkCmd = &cobra.Command{
	Use:   "check <measure.json>",
	Short: "Run every measurement validator and report the findings",
	Args:  cobra.ExactArgs(1),
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

		var doc model.MeasureType
		if err := readJSON(args[0], &doc); err != nil {
			return err
		}

		normalizer := measure.NewNormalizer(logger)
		normalizer.Normalize(&doc)

		errs := normalizer.AllErrors(&doc)
		for _, msg := range errs {
			fmt.Fprintln(os.Stderr, msg)
		}
		if len(errs) > 0 {
			return fmt.Errorf("%d validation error(s)", len(errs))
		}
		fmt.Println("OK")
		return nil
	},
}
