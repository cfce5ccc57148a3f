package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/FACorreiaa/statement-extractor/internal/statement/header"
	"github.com/FACorreiaa/statement-extractor/internal/statement/registry"
	"github.com/FACorreiaa/statement-extractor/internal/statement/service"
	"github.com/FACorreiaa/statement-extractor/internal/statement/table"
)

var (
	outputFormat string
	outputPath   string
	mode         string
	marker       string
	policyFlag   string
	synonymsPath string
	registryPath string
)

var processCmd = &cobra.Command{
	Use:   "process <statement>...",
	Short: "Extract one or more statement files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildService()
		if err != nil {
			return err
		}

		failures := 0
		for _, path := range args {
			if err := processFile(cmd, svc, path); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				failures++
			}
		}
		if failures > 0 {
			return fmt.Errorf("%d of %d files failed", failures, len(args))
		}
		return nil
	},
}

func buildService() (*service.Service, error) {
	logger := newLogger()

	policy, err := service.ParsePolicy(policyFlag)
	if err != nil {
		return nil, err
	}
	opts := []service.Option{service.WithPolicy(policy)}

	if synonymsPath != "" {
		synonyms, err := header.LoadSynonyms(synonymsPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, service.WithSynonyms(synonyms))
	}

	if registryPath != "" {
		cfg, err := registry.LoadConfig(registryPath)
		if err != nil {
			return nil, err
		}
		banks, err := cfg.Build(logger)
		if err != nil {
			return nil, err
		}
		opts = append(opts, service.WithRegistry(banks))
	} else {
		opts = append(opts, service.WithRegistry(registry.DefaultRegistry(marker, logger)))
	}

	return service.New(logger, opts...), nil
}

func processFile(cmd *cobra.Command, svc *service.Service, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var src table.Source
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		src, err = table.NewCSVSource(file, 0)
		if err != nil {
			return err
		}
	case ".xlsx", ".xlsm":
		src = table.NewExcelSource(file)
	case ".xls":
		src = table.NewXLSSource(file)
	default:
		return fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}

	out, err := openOutput()
	if err != nil {
		return err
	}
	if out != os.Stdout {
		defer out.Close()
	}

	ctx := cmd.Context()
	if mode == "bank" {
		result, err := svc.ProcessBankSource(ctx, src)
		if err != nil {
			return err
		}
		if outputFormat == "csv" {
			return gocsv.Marshal(result.Transactions, out)
		}
		return writeIndented(out, result)
	}

	result, err := svc.ProcessSource(ctx, src)
	if err != nil {
		return err
	}
	if outputFormat == "csv" {
		return gocsv.Marshal(result.Transactions, out)
	}
	return writeIndented(out, result)
}

// openOutput picks the destination: --out when set, stdout otherwise. With
// several inputs and --out, results are appended in argument order.
func openOutput() (*os.File, error) {
	if outputPath == "" || outputPath == "-" {
		return os.Stdout, nil
	}
	return os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func writeIndented(out *os.File, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	processCmd.Flags().StringVar(&outputFormat, "format", "json", "output format: json or csv")
	processCmd.Flags().StringVar(&outputPath, "out", "", "output file (default stdout)")
	processCmd.Flags().StringVar(&mode, "mode", "generic", "pipeline: generic or bank")
	processCmd.Flags().StringVar(&marker, "marker", "", "counterparty marker for bank mode")
	processCmd.Flags().StringVar(&policyFlag, "policy", "transactions", "response policy: transactions or metadata")
	processCmd.Flags().StringVar(&synonymsPath, "synonyms", "", "YAML header synonym table")
	processCmd.Flags().StringVar(&registryPath, "registry", "", "YAML bank registry configuration")
	rootCmd.AddCommand(processCmd)
}
