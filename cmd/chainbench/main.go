// Package main provides the CLI entry point for chainbench, a
// smart-contract benchmarking tool that times repeated method calls
// against a deployed contract over JSON-RPC.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/weiihann/chainbench/bench"
	"github.com/weiihann/chainbench/chart"
	"github.com/weiihann/chainbench/client"
	"github.com/weiihann/chainbench/report"
	"github.com/weiihann/chainbench/scenario"
)

// privateKeyEnv names the environment variable holding the signing
// key. The key is never accepted via flag or suite file.
const privateKeyEnv = "CHAINBENCH_PRIVATE_KEY"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Optional; a missing .env just means the key comes from the
	// process environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env", slog.String("error", err.Error()))
	}

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		logger.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "chainbench",
		Short: "Smart-contract performance benchmarking tool",
		Long: `Chainbench repeatedly invokes methods on a deployed smart contract
through JSON-RPC, timing each call and recording gas usage, success rate
and transaction metadata. Results are aggregated into summary statistics
and exported to CSV/JSON plus charts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newMethodsCmd())

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		suitePath  string
		rpcURL     string
		contract   string
		abiPath    string
		method     string
		args       []string
		iterations int
		warmup     int
		read       bool
		outputDir  string
		charts     bool
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a benchmark suite or a single method benchmark",
		Long: `Run benchmarks against a deployed contract. Either point --suite at a
YAML suite file, or describe a single benchmark with --rpc-url,
--contract, --abi and --method.

Write calls need a signing key in the ` + privateKeyEnv + ` environment
variable (a .env file in the working directory is honored).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			suite, err := resolveSuite(suiteFlags{
				suitePath:  suitePath,
				rpcURL:     rpcURL,
				contract:   contract,
				abiPath:    abiPath,
				method:     method,
				args:       args,
				iterations: iterations,
				warmup:     warmup,
				read:       read,
				outputDir:  outputDir,
				charts:     charts,
			})
			if err != nil {
				return err
			}

			return runSuite(cmd.Context(), logger, suite, outputJSON)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&suitePath, "suite", "",
		"Path to a YAML benchmark suite file")
	flags.StringVar(&rpcURL, "rpc-url", "",
		"JSON-RPC endpoint of the target chain")
	flags.StringVar(&contract, "contract", "",
		"Address of the deployed contract")
	flags.StringVar(&abiPath, "abi", "",
		"Path to the contract ABI JSON file")
	flags.StringVar(&method, "method", "",
		"Contract method to benchmark")
	flags.StringArrayVar(&args, "arg", nil,
		"Method argument (repeatable, in order)")
	flags.IntVar(&iterations, "iterations", scenario.DefaultIterations,
		"Number of measured executions")
	flags.IntVar(&warmup, "warmup", scenario.DefaultWarmup,
		"Number of discarded warmup executions")
	flags.BoolVar(&read, "read", false,
		"Treat the method as a read-only call (no transaction)")
	flags.StringVar(&outputDir, "output-dir", "benchmark_results",
		"Directory for exported results and charts")
	flags.BoolVar(&charts, "charts", false,
		"Render PNG charts of the results")
	flags.BoolVar(&outputJSON, "json", false,
		"Print summaries as JSON instead of text")

	return cmd
}

func newMethodsCmd() *cobra.Command {
	var abiPath string

	cmd := &cobra.Command{
		Use:   "methods",
		Short: "List the callable methods of a contract ABI",
		RunE: func(_ *cobra.Command, _ []string) error {
			data, err := os.ReadFile(abiPath)
			if err != nil {
				return fmt.Errorf("read ABI %s: %w", abiPath, err)
			}

			methods, err := client.ParseMethods(string(data))
			if err != nil {
				return err
			}

			for _, m := range methods {
				fmt.Println(m.Sig)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&abiPath, "abi", "",
		"Path to the contract ABI JSON file")
	_ = cmd.MarkFlagRequired("abi")

	return cmd
}

type suiteFlags struct {
	suitePath  string
	rpcURL     string
	contract   string
	abiPath    string
	method     string
	args       []string
	iterations int
	warmup     int
	read       bool
	outputDir  string
	charts     bool
}

// resolveSuite loads the suite file, or synthesizes a single-scenario
// suite from the individual flags.
func resolveSuite(f suiteFlags) (*scenario.Suite, error) {
	if f.suitePath != "" {
		return scenario.Load(f.suitePath)
	}

	if f.method == "" {
		return nil, fmt.Errorf("either --suite or --method must be given")
	}

	args := make([]any, 0, len(f.args))
	for _, raw := range f.args {
		args = append(args, parseArg(raw))
	}

	warmup := f.warmup

	suite := &scenario.Suite{
		RPCURL:    f.rpcURL,
		Contract:  f.contract,
		ABIPath:   f.abiPath,
		OutputDir: f.outputDir,
		Charts:    f.charts,
		Scenarios: []scenario.Scenario{{
			Method:     f.method,
			Args:       args,
			Iterations: f.iterations,
			Warmup:     &warmup,
			Read:       f.read,
		}},
	}

	if err := suite.Validate(); err != nil {
		return nil, err
	}

	return suite, nil
}

// parseArg interprets a CLI argument string as a YAML scalar so that
// numbers and booleans arrive typed, matching suite-file arguments.
func parseArg(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}

	return v
}

func runSuite(
	ctx context.Context,
	logger *slog.Logger,
	suite *scenario.Suite,
	outputJSON bool,
) error {
	abiJSON, err := os.ReadFile(suite.ABIPath)
	if err != nil {
		return fmt.Errorf("read ABI %s: %w", suite.ABIPath, err)
	}

	contract, err := client.Dial(ctx, client.Config{
		RPCURL:     suite.RPCURL,
		Contract:   suite.Contract,
		ABIJSON:    string(abiJSON),
		PrivateKey: os.Getenv(privateKeyEnv),
	}, logger)
	if err != nil {
		return err
	}
	defer contract.Close()

	runner := bench.NewRunner(contract, logger)

	for _, sc := range suite.Scenarios {
		logger.Info("running scenario", slog.String("name", sc.Name))

		summary, err := runner.Run(ctx, bench.Spec{
			Method:     sc.Method,
			Args:       sc.Args,
			Iterations: sc.Iterations,
			Warmup:     sc.WarmupCount(),
			Read:       sc.Read,
		})
		if err != nil {
			return fmt.Errorf("scenario %s: %w", sc.Name, err)
		}

		if outputJSON {
			err = report.WriteJSON(os.Stdout, summary)
		} else {
			err = report.Write(os.Stdout, summary)
		}

		if err != nil {
			return fmt.Errorf("report scenario %s: %w", sc.Name, err)
		}
	}

	results := runner.Results()

	csvPath, jsonPath, err := report.Export(suite.OutputDir, "", results)
	if errors.Is(err, report.ErrNoResults) {
		logger.Warn("no results to export")

		return nil
	}
	if err != nil {
		return fmt.Errorf("export results: %w", err)
	}

	logger.Info("results exported",
		slog.String("csv", csvPath),
		slog.String("json", jsonPath),
	)

	if suite.Charts {
		chartDir := suite.OutputDir

		err := chart.Render(chartDir, results)
		switch {
		case errors.Is(err, chart.ErrNoResults):
			logger.Warn("no successful results to visualize")
		case err != nil:
			return fmt.Errorf("render charts: %w", err)
		default:
			logger.Info("charts rendered", slog.String("dir", chartDir))
		}
	}

	return nil
}
