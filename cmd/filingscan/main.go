// filingscan — regulatory filing extraction toolkit
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantfold/filingscan/internal/batch"
	"github.com/quantfold/filingscan/internal/config"
	"github.com/quantfold/filingscan/internal/exportkv"
	"github.com/quantfold/filingscan/internal/forms/holdings"
	"github.com/quantfold/filingscan/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "filingscan",
	Short: "filingscan — structured extraction from regulatory filings",
	Long: `filingscan turns raw filing documents (insider forms, holdings
reports, ownership schedules, current reports, transcripts) into typed
records with derived signals. It reads local files; fetching is out of
scope.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log.SetOutput(os.Stderr)
		log.SetPrefix("filingscan: ")
		log.SetFlags(0)
		debugf("config loaded: scoring=%+v diff=%+v extract=%+v batch=%+v",
			cfg.Scoring, cfg.Diff, cfg.Extract, cfg.Batch)
		return nil
	},
}

// debugf logs only when the configured logging level asks for it.
func debugf(format string, args ...any) {
	if cfg != nil && cfg.Logging.Level == "debug" {
		log.Printf(format, args...)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(formsCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("filingscan %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Parse Command ---

var parseCmd = &cobra.Command{
	Use:   "parse [form-type] [file]",
	Short: "Parse a filing document into its typed record",
	Long: `Parse a local filing document and print the extracted record as JSON.

Examples:
  filingscan parse 4 form4.xml --ticker AAPL --filed 2025-06-17
  filingscan parse 13D schedule.htm --ticker TGT --prior-percent 6.8
  filingscan parse CAPEX annual_report.txt --period "FY 2024" --prior-capex 7200 --revenue 96000
  filingscan parse EARNINGS transcript.txt --quarter 1 --year 2025 --kv`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}

		req := batch.Request{
			Form:     models.FormType(args[0]),
			Content:  string(content),
			Identity: identityFromFlags(cmd),
		}
		req.Period, _ = cmd.Flags().GetString("period")
		req.FiscalQuarter, _ = cmd.Flags().GetInt("quarter")
		req.FiscalYear, _ = cmd.Flags().GetInt("year")
		if cmd.Flags().Changed("prior-percent") {
			pct, _ := cmd.Flags().GetFloat64("prior-percent")
			req.Prior.Percent = pct
			req.Prior.Known = true
		}
		if cmd.Flags().Changed("prior-capex") {
			req.Basis.PriorCapEx, _ = cmd.Flags().GetFloat64("prior-capex")
			req.Basis.HasPriorCapEx = true
		}
		if cmd.Flags().Changed("revenue") {
			req.Basis.Revenue, _ = cmd.Flags().GetFloat64("revenue")
			req.Basis.HasRevenue = true
		}

		debugf("parsing %s document from %s (%d bytes)", req.Form, args[1], len(content))
		extractor := batch.NewExtractor(cfg.Scorer(), cfg.Caps(), cfg.Batch.Concurrency)
		rec, err := extractor.Extract(req)
		if err != nil {
			return err
		}

		if kv, _ := cmd.Flags().GetBool("kv"); kv {
			return printKV(rec)
		}
		return printJSON(rec)
	},
}

func init() {
	parseCmd.Flags().String("ticker", "", "ticker symbol of the subject company")
	parseCmd.Flags().String("company", "", "company name")
	parseCmd.Flags().String("cik", "", "regulator-assigned company identifier")
	parseCmd.Flags().String("filed", "", "filing date (YYYY-MM-DD)")
	parseCmd.Flags().String("accession", "", "accession number of the filing")
	parseCmd.Flags().String("period", "", "reporting period label, e.g. 'FY 2024' (CapEx)")
	parseCmd.Flags().Int("quarter", 0, "fiscal quarter (earnings call)")
	parseCmd.Flags().Int("year", 0, "fiscal year (earnings call)")
	parseCmd.Flags().Float64("prior-percent", 0, "previously disclosed percent of class (13D/13G)")
	parseCmd.Flags().Float64("prior-capex", 0, "prior-period CapEx in millions")
	parseCmd.Flags().Float64("revenue", 0, "period revenue in millions, for CapEx intensity")
	parseCmd.Flags().Bool("kv", false, "print the record as flat key=value lines")
}

// --- Diff Command ---

var diffCmd = &cobra.Command{
	Use:   "diff [current-file] [previous-file]",
	Short: "Compare two holdings reports from the same filer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := holdings.NewParser(cfg.Scorer())
		id := identityFromFlags(cmd)

		current, err := parseHoldingsFile(parser, args[0], id)
		if err != nil {
			return err
		}
		previous, err := parseHoldingsFile(parser, args[1], id)
		if err != nil {
			return err
		}

		debugf("comparing %d current against %d previous positions", current.TotalPositions, previous.TotalPositions)
		delta := cfg.Differencer().Compare(current, previous)
		return printJSON(delta)
	},
}

func init() {
	diffCmd.Flags().String("ticker", "", "ticker symbol of the filer")
	diffCmd.Flags().String("company", "", "filer name")
	diffCmd.Flags().String("cik", "", "regulator-assigned filer identifier")
	diffCmd.Flags().String("filed", "", "filing date of the current report (YYYY-MM-DD)")
	diffCmd.Flags().String("accession", "", "accession number of the current report")
}

func parseHoldingsFile(parser *holdings.Parser, path string, id models.FilingIdentity) (*models.HoldingRecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read holdings report: %w", err)
	}
	return parser.Parse(string(content), id)
}

// --- Forms Command ---

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "List the supported form types",
	Run: func(cmd *cobra.Command, args []string) {
		for _, ft := range []models.FormType{
			models.FormInsiderInitial,
			models.FormInsiderTransaction,
			models.FormInsiderAnnual,
			models.FormHoldings,
			models.FormOwnershipActive,
			models.FormOwnershipPassive,
			models.FormMaterialEvent,
			models.FormCapEx,
			models.FormEarningsCall,
		} {
			fmt.Printf("  %-10s\n", ft)
		}
	},
}

// --- Helpers ---

func identityFromFlags(cmd *cobra.Command) models.FilingIdentity {
	ticker, _ := cmd.Flags().GetString("ticker")
	company, _ := cmd.Flags().GetString("company")
	cik, _ := cmd.Flags().GetString("cik")
	filed, _ := cmd.Flags().GetString("filed")
	accession, _ := cmd.Flags().GetString("accession")
	return models.FilingIdentity{
		Ticker:          ticker,
		CompanyName:     company,
		CIK:             cik,
		FiledDate:       filed,
		AccessionNumber: accession,
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func printKV(v any) error {
	flat, err := exportkv.Flatten(v)
	if err != nil {
		return err
	}
	for _, k := range exportkv.Keys(flat) {
		fmt.Printf("%s=%s\n", k, flat[k])
	}
	return nil
}
