package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/cenexa-creg/genomos/internal/log"
	"github.com/cenexa-creg/genomos/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	userConfigPath string // /default/config/path/genomos on given OS
	configPath     string // actual config file used (if loaded)

	flagConfigFilePath string // value of --config flag
	flagVerbose        bool   // value of --verbose flag

	flagInput        string   // -f/--file
	flagOutput       string   // -o/--output
	flagStatusColumn string   // --column
	flagIDColumn     string   // --id-column
	flagTm           []string // -t/--tm
	flagTxt          string   // --txt
)

var rootCmd = &cobra.Command{
	Use:          "genomos",
	Short:        "HRM-PCR genotype analysis by melting temperature",
	SilenceUsage: true,
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "count tallies rows of a tabular file by their S/H/R status label",
	RunE:  doCount,
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "classify assigns genotype states by the nearest reference Tm",
	RunE:  doClassify,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "version provides a version of genomos",
	RunE:  doVersion,
}

func init() {
	// user configuration
	d, err := os.UserConfigDir()
	if err != nil {
		panic(err)
	}
	userConfigPath = filepath.Join(d, "genomos")

	// root flags
	rootCmd.PersistentFlags().StringVar(&flagConfigFilePath, "config", "", "Config file to load - default is genomos.yaml in current directory or in "+userConfigPath)
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "verbose logging")

	countCmd.Flags().StringVarP(&flagInput, "file", "f", "", "input file (.csv, .tsv, .txt or .xlsx)")
	countCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the summary here instead of stdout")
	countCmd.Flags().StringVar(&flagStatusColumn, "column", "", "status column name (default from config, Status)")
	countCmd.Flags().StringVar(&flagIDColumn, "id-column", "", "sample id column, only used in debug logs")

	classifyCmd.Flags().StringVarP(&flagInput, "file", "f", "", "input file with Tm_<locus> columns")
	classifyCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "results file (default from config, resultados.xlsx)")
	classifyCmd.Flags().StringArrayVarP(&flagTm, "tm", "t", nil, "reference Tm per locus, format POS:S:VAL,H:VAL,R:VAL (repeatable)")
	classifyCmd.Flags().StringVar(&flagTxt, "txt", "", "also write the genotype distribution to this text file")
	classifyCmd.Flags().StringVar(&flagIDColumn, "id-column", "", "sample id column carried into the results")

	// never print messages and usage
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if cmd, err := rootCmd.ExecuteC(); err != nil {
		slog.Error("genomos failed", "err", err)
		if strings.HasPrefix(err.Error(), "unknown command") {
			_ = rootCmd.Help() // ./genomos bflmp
		} else {
			_ = cmd.Help() // ./genomos count gfagf (extra arg)
		}
		os.Exit(1)
	}
}

func doVersion(cmd *cobra.Command, args []string) error {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return fmt.Errorf("genomos: version info not available")
	}

	if configPath != "" {
		fmt.Printf("config: %s\n", configPath)
	}
	fmt.Printf("genomos: %s\n", info.Main.Version)
	fmt.Printf("go:     %s\n", info.GoVersion)
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			fmt.Printf("commit: %s\n", s.Value)
		case "vcs.time":
			fmt.Printf("date:   %s\n", s.Value)
		case "vcs.modified":
			fmt.Printf("dirty:  %s\n", s.Value)
		}
	}
	fmt.Println()

	return nil
}

func loadConfig(_ *cobra.Command, _ []string) (model.Config, error) {
	if envConfig, ok := os.LookupEnv("GENOMOSCONFIG"); ok {
		configPath = envConfig
	} else if flagConfigFilePath != "" {
		configPath = flagConfigFilePath
	} else {
		for _, d := range []string{userConfigPath, "."} {
			path := filepath.Join(d, "genomos.yaml")
			if exists(path) {
				configPath = path
				break
			}
		}
	}

	var config model.Config

	// store default configuration
	if configPath == "" {
		config = model.DefaultConfig()
		configPath = filepath.Join(userConfigPath, "genomos.yaml")
		err := os.MkdirAll(filepath.Dir(configPath), 0755)
		if err != nil {
			return config, fmt.Errorf("creating directory %s: %w", filepath.Dir(configPath), err)
		}

		f, err := os.Create(configPath)
		if err != nil {
			return config, fmt.Errorf("creating file %s: %w", configPath, err)
		}
		defer func() {
			_ = f.Close()
		}()
		enc := yaml.NewEncoder(f)
		err = enc.Encode(config)
		if err != nil {
			return config, fmt.Errorf("storing configuration: %w", err)
		}
	} else {
		var err error
		config, err = model.LoadConfigFromPath(configPath)
		if err != nil {
			return config, err
		}
		if err := config.Validate(); err != nil {
			return config, err
		}
	}

	// --verbose has a precedence over config file
	if flagVerbose {
		config.Service.Verbose = true
	}

	// initialize logging
	slog.SetDefault(log.NewAt(logWriter(config.Service.Log), config.Service.Verbose))

	slog.Debug("genomos", "configPath", configPath)
	slog.Debug("genomos", "config", config)
	return config, nil
}

func logWriter(mode string) io.Writer {
	switch mode {
	case model.LogStdout:
		return os.Stdout
	case model.LogDiscard:
		return io.Discard
	default:
		return os.Stderr
	}
}

func runAttrs(cmd string) slog.Attr {
	return slog.Group("genomos",
		slog.String("cmd", cmd),
		slog.Int("pid", os.Getpid()),
		slog.String("run", uuid.New().String()),
	)
}

func exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
