package main

import (
	"fmt"
	"os"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <file.json> <jsonpath>",
	Short: "Evaluate a JSONPath expression against a JSON document",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		doc, err := oj.Parse(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		expr, err := jp.ParseString(args[1])
		if err != nil {
			return fmt.Errorf("invalid jsonpath %q: %w", args[1], err)
		}
		for _, result := range expr.Get(doc) {
			fmt.Println(oj.JSON(result, 2))
		}
		return nil
	},
}
