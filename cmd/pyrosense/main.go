package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"pyrosense/adapters/ledger"
	"pyrosense/adapters/models"
	"pyrosense/app"
	"pyrosense/domain/core"
	"pyrosense/domain/fuel"
	"pyrosense/domain/units"
	"pyrosense/internal"
	"pyrosense/internal/config"
	"pyrosense/internal/fuelmatch"
	"pyrosense/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pyrosense",
		Short: "Sensitivity analysis harness for fire behavior models",
	}

	rootCmd.AddCommand(
		newStudyCmd(),
		newStudiesCmd(),
		newCatalogCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newStudyCmd() *cobra.Command {
	var save bool
	var workers int

	cmd := &cobra.Command{
		Use:   "study [study-file]",
		Short: "Run a sensitivity study over the built-in spread model",
		Long: `Run a variance-based sensitivity study described by a YAML study file.

Example: pyrosense study grassfire.yaml --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudy(cmd.Context(), args[0], save, workers)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Persist the run record to the configured ledger")
	cmd.Flags().IntVar(&workers, "workers", 0, "Evaluation worker count (0 uses the configured default)")

	return cmd
}

func runStudy(ctx context.Context, path string, save bool, workers int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Logging.Level))

	sf, err := app.LoadStudyFile(path)
	if err != nil {
		return err
	}
	req, err := sf.Request()
	if err != nil {
		return err
	}
	if req.Analyzer.BootstrapSamples == 0 {
		req.Analyzer.BootstrapSamples = cfg.Study.BootstrapSamples
	}
	if req.Analyzer.Confidence == 0 {
		req.Analyzer.Confidence = cfg.Study.Confidence
	}
	if req.Analyzer.Seed == 0 {
		req.Analyzer.Seed = cfg.Study.Seed
	}

	var runLedger ports.LedgerPort
	if save {
		if cfg.Database.URL == "" {
			return fmt.Errorf("--save requires DATABASE_URL to be configured")
		}
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("connecting to ledger database: %w", err)
		}
		defer db.Close()
		if err := ledger.EnsureSchema(ctx, db); err != nil {
			return err
		}
		runLedger = ledger.NewPostgresLedger(db)
	}

	svc := app.NewStudyService(models.NewWindSlope(), runLedger, nil, logger)
	if workers > 0 {
		svc.SetWorkers(workers)
	} else if cfg.Study.Workers > 0 {
		svc.SetWorkers(cfg.Study.Workers)
	}

	res, err := svc.RunStudy(ctx, req)
	if err != nil {
		return err
	}

	printStudy(res)
	return nil
}

func printStudy(res *app.StudyResult) {
	rec := res.Record
	fmt.Printf("run      %s\n", rec.RunID)
	fmt.Printf("model    %s\n", rec.Model)
	fmt.Printf("design   %d parameters x %d base points (%d rows)\n",
		len(rec.Parameters), rec.BasePoints, res.Design.Rows())
	if rec.WarningCount > 0 {
		fmt.Printf("warnings %d range violations\n", rec.WarningCount)
	}

	for _, cr := range rec.Results {
		if cr.Category > 0 {
			fmt.Printf("\nfuel category %d (output variance %.4g)\n", cr.Category, cr.OutputVariance)
		} else {
			fmt.Printf("\noutput variance %.4g\n", cr.OutputVariance)
		}
		fmt.Printf("  %-12s %10s %10s %10s %10s\n", "parameter", "S1", "±", "ST", "±")
		for i, name := range rec.Parameters {
			fmt.Printf("  %-12s %10.4f %10.4f %10.4f %10.4f\n",
				name, cr.FirstOrder[i], cr.FirstOrderConf[i], cr.Total[i], cr.TotalConf[i])
		}
		for _, d := range cr.TotalBelowFirst {
			fmt.Printf("  note: %s has total-order below first-order (estimation noise)\n",
				rec.Parameters[d])
		}
	}
	fmt.Printf("\nruntime  %dms\n", rec.RuntimeMs)
}

func newStudiesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "studies",
		Short: "List recorded study runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				return fmt.Errorf("listing studies requires DATABASE_URL to be configured")
			}
			db, err := sqlx.Connect("postgres", cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("connecting to ledger database: %w", err)
			}
			defer db.Close()

			recs, err := ledger.NewPostgresLedger(db).ListStudies(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, rec := range recs {
				fmt.Printf("%s  %s  %s  N=%d  params=%s\n",
					rec.CreatedAt, rec.RunID, rec.Model, rec.BasePoints,
					strings.Join(rec.Parameters, ","))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")

	return cmd
}

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Fuel catalog operations",
	}
	cmd.AddCommand(newCatalogMatchCmd())
	return cmd
}

func newCatalogMatchCmd() *cobra.Command {
	var targets []string
	var weightSpecs []string

	cmd := &cobra.Command{
		Use:   "match [catalog-file]",
		Short: "Find the catalog fuel class closest to observed conditions",
		Long: `Match observed fuel properties against a YAML fuel catalog.

Example: pyrosense catalog match grass.yaml --target fuel_height=1.1:m --target fuel_load=2:kg/m2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogMatch(args[0], targets, weightSpecs)
		},
	}

	cmd.Flags().StringArrayVar(&targets, "target", nil, "Observed property as name=value:unit (repeatable)")
	cmd.Flags().StringArrayVar(&weightSpecs, "weight", nil, "Property weight as name=weight (repeatable)")

	return cmd
}

func runCatalogMatch(path string, targets, weightSpecs []string) error {
	if len(targets) == 0 {
		return fmt.Errorf("at least one --target is required")
	}

	cat, err := fuel.LoadCatalog(path)
	if err != nil {
		return err
	}

	target := make(map[core.StandardName]units.Quantity, len(targets))
	for _, spec := range targets {
		name, q, err := parseTarget(spec)
		if err != nil {
			return fmt.Errorf("invalid --target %q: %w", spec, err)
		}
		target[name] = q
	}

	weights := make(map[core.StandardName]float64, len(weightSpecs))
	for _, spec := range weightSpecs {
		name, rest, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("invalid --weight %q: want name=weight", spec)
		}
		w, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return fmt.Errorf("invalid --weight %q: %w", spec, err)
		}
		weights[core.StandardName(name)] = w
	}

	index, err := fuelmatch.ClosestClass(cat, target, weights)
	if err != nil {
		return err
	}
	class, err := cat.Class(index)
	if err != nil {
		return err
	}

	fmt.Printf("class %d", class.Index)
	if class.Name != "" {
		fmt.Printf("  %s", class.Name)
	}
	fmt.Println()
	for _, key := range cat.PropertyKeys() {
		fmt.Printf("  %-20s %s\n", key, class.Properties[key])
	}
	return nil
}

// parseTarget decodes name=value:unit; the unit may be omitted for
// dimensionless properties.
func parseTarget(spec string) (core.StandardName, units.Quantity, error) {
	name, rest, ok := strings.Cut(spec, "=")
	if !ok {
		return "", units.Quantity{}, fmt.Errorf("want name=value:unit")
	}
	valStr, unitStr, _ := strings.Cut(rest, ":")
	v, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return "", units.Quantity{}, err
	}
	u, err := units.Parse(unitStr)
	if err != nil {
		return "", units.Quantity{}, err
	}
	return core.StandardName(name), units.Scalar(v, u), nil
}
