package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/routegen/internal/cli/config"
	"github.com/conduit-lang/routegen/openapi"
)

var openapiOut string

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Emit an OpenAPI 3 document for the configured entity",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		contracts, _, err := buildContracts()
		if err != nil {
			return err
		}

		doc, err := openapi.Generate(openapi.Info{
			Title:   cfg.Docs.Title,
			Version: cfg.Docs.Version,
		}, contracts...)
		if err != nil {
			return err
		}

		var out []byte
		switch cfg.Docs.Format {
		case "json":
			out, err = doc.JSON()
		case "yaml", "":
			out, err = doc.YAML()
		default:
			return fmt.Errorf("unknown docs format %q", cfg.Docs.Format)
		}
		if err != nil {
			return err
		}

		if openapiOut == "" {
			fmt.Print(string(out))
			return nil
		}
		return os.WriteFile(openapiOut, out, 0o644)
	},
}

func init() {
	openapiCmd.Flags().StringVarP(&openapiOut, "output", "o", "", "write the document to a file instead of stdout")
}
