// debrief turns a recorded debate session into an executive decision
// brief: a validated JSON document and a paginated PDF.
//
// Usage:
//
//	debrief generate session.yaml -o brief.pdf
//	debrief extract session.yaml
//	debrief validate brief.json
//	debrief render brief.json -o brief.html
//	debrief batch ./sessions -o ./out
//	debrief serve
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"debrief/internal/config"
	"debrief/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// cfg is the effective configuration, loaded before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "debrief",
	Short: "Executive decision briefs from multi-agent debate sessions",
	Long: "Debrief distills a recorded debate session into a one-page executive\n" +
		"decision brief: a contract-validated JSON document and a paginated PDF\n" +
		"composed with a headless browser.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := logging.ParseLevel(rootFlags.logLevel)
		if err != nil {
			return err
		}
		logging.Init(level, rootFlags.logFormat)

		cfg, err = config.Load(rootFlags.configPath)
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Path to config file (YAML/JSON); defaults + DEBRIEF_* env otherwise")
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
