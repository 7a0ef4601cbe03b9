/*
Copyright 2024 topo-configgen contributors
*/

package cmd

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nodeforge/topo-configgen/pkg/cli"
)

const (
	defaultConfigFilename = "system_config"
	envPrefix             = "TOPOCFG"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "topo-configgen",
	Short: "Generate Cisco IOS device configurations from a network topology",
	Long: `topo-configgen ingests a user-designed network topology (routers,
layer-3 core switches, layer-2 switches, endpoint hosts, links, VLAN
definitions) and emits per-device Cisco IOS command scripts, an IP
allocation report, and a network-simulator driver script.`,
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetConfigName(defaultConfigFilename)
	viper.AddConfigPath(".")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Println("using config file:", viper.ConfigFileUsed())
	}
}

func init() {
	cli.Runtime = time.Now()
	cli.RuntimeTimestamp = cli.Runtime.Format(time.RFC3339)

	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./system_config.yaml)")
	rootCmd.AddCommand(generateCmd)
}
