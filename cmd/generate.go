/*
Copyright 2024 topo-configgen contributors
*/

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nodeforge/topo-configgen/pkg/cli"
	"github.com/nodeforge/topo-configgen/pkg/ingest"
	"github.com/nodeforge/topo-configgen/pkg/plan"
	"github.com/nodeforge/topo-configgen/pkg/topology"
)

var validModes = []string{"digital", "physical"}

var (
	inputPath    string
	outputDir    string
	baseOctet    int
	scale        float64
	modeFlag     string
	computersCSV string
)

// generateCmd runs one end-to-end generation request from a JSON or YAML
// topology file and writes the three output artifacts to outputDir.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate device configs, an allocation report, and a simulator driver script",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&inputPath, "input", "", "path to a JSON or YAML topology file (required)")
	generateCmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory to write output artifacts into")
	generateCmd.Flags().IntVar(&baseOctet, "base-octet", 19, "base network octet (1-223)")
	generateCmd.Flags().Float64Var(&scale, "scale", 1.0, "coordinate scale factor for the simulator driver")
	generateCmd.Flags().StringVar(&modeFlag, "mode", "digital", "generation mode: digital or physical")
	generateCmd.Flags().StringVar(&computersCSV, "computers-csv", "", "optional bulk host-import CSV file (switch,name,portType,portNumber,vlan)")
	generateCmd.MarkFlagRequired("input")

	viper.BindPFlag("input", generateCmd.Flags().Lookup("input"))
	viper.BindPFlag("output-dir", generateCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("base-octet", generateCmd.Flags().Lookup("base-octet"))
	viper.BindPFlag("scale", generateCmd.Flags().Lookup("scale"))
	viper.BindPFlag("mode", generateCmd.Flags().Lookup("mode"))
	viper.BindPFlag("computers-csv", generateCmd.Flags().Lookup("computers-csv"))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	mode := viper.GetString("mode")
	if !cli.StringInSlice(mode, validModes) {
		return fmt.Errorf("invalid --mode %q: must be one of %v", mode, validModes)
	}

	path := viper.GetString("input")
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	var decoded *ingest.Decoded
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		decoded, err = ingest.DecodeYAML(raw)
	} else {
		decoded, err = ingest.DecodeJSON(raw)
	}
	if err != nil {
		return fmt.Errorf("decoding topology: %w", err)
	}

	if csvPath := viper.GetString("computers-csv"); csvPath != "" {
		byName, err := ingest.ReadComputersCSV(csvPath)
		if err != nil {
			return fmt.Errorf("reading computers CSV: %w", err)
		}
		ingest.ApplyComputers(decoded.Devices, byName)
	}

	req := plan.Request{
		Devices:          decoded.Devices,
		Links:            decoded.Links,
		VLANs:            decoded.VLANs,
		BaseNetworkOctet: viper.GetInt("base-octet"),
		Mode:             topology.GenerationMode(viper.GetString("mode")),
		CoordinateScale:  viper.GetFloat64("scale"),
	}

	result, err := plan.Generate(context.Background(), logger, req)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	writes := map[string]string{
		"routers.txt":     result.Bundles.Routers,
		"l3-cores.txt":    result.Bundles.L3Cores,
		"l2-switches.txt": result.Bundles.L2Switches,
		"all.txt":         result.Bundles.All,
		"report.txt":      result.Report,
		"simdriver.js":    result.SimulatorDriver,
	}
	for name, content := range writes {
		if err := os.WriteFile(filepath.Join(outputDir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}

	logger.Info("generation complete", zap.String("outputDir", outputDir))
	return nil
}
