package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/routegen/contract"
	"github.com/conduit-lang/routegen/internal/cli/config"
	"github.com/conduit-lang/routegen/ops"
	"github.com/conduit-lang/routegen/schema"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the derived route table for the configured entity",
	RunE: func(cmd *cobra.Command, args []string) error {
		contracts, name, err := buildContracts()
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		bold.Printf("Routes for %s\n", name)
		fmt.Println(strings.Repeat("-", 72))

		for _, c := range contracts {
			fmt.Printf("%s %-38s %s\n", methodColor(c.Method)(fmt.Sprintf("%-7s", c.Method)), c.Path, c.Metadata.Summary)
		}
		return nil
	},
}

// buildContracts loads the tool config and entity definition and derives the
// standard contract family.
func buildContracts() ([]*contract.Contract, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}

	name, entity, err := schema.LoadEntityFile(cfg.Entity.File)
	if err != nil {
		return nil, "", err
	}

	operations, err := ops.New(entity, name, ops.Options{
		IDField:       cfg.Entity.IDField,
		HasTimestamps: cfg.Entity.HasTimestamps,
		HasSoftDelete: cfg.Entity.HasSoftDelete,
		MaxBatchSize:  cfg.Operations.MaxBatchSize,
		BasePath:      cfg.Operations.BasePath,
	})
	if err != nil {
		return nil, "", err
	}

	contracts, err := operations.StandardContracts()
	if err != nil {
		return nil, "", err
	}
	return contracts, name, nil
}

func methodColor(method string) func(format string, a ...interface{}) string {
	switch method {
	case "GET":
		return color.GreenString
	case "POST":
		return color.CyanString
	case "PUT", "PATCH":
		return color.YellowString
	case "DELETE":
		return color.RedString
	default:
		return fmt.Sprintf
	}
}
