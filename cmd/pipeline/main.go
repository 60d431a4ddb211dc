package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"foodafford/internal/affordability"
	"foodafford/internal/config"
	"foodafford/internal/database"
	"foodafford/internal/loader"
	"foodafford/internal/logger"
	"foodafford/internal/services"
)

const defaultExportPath = "affordability_final.csv"

// Flag keys, shared between cobra and viper.
const (
	keyPrices       = "prices"
	keyIncome       = "income"
	keyBasket       = "basket"
	keyCategories   = "categories"
	keyBaselineYear = "baseline-year"
	keyExport       = "export"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatalf("failed to load configuration: %v", err)
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		logger.Get().Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg, os.Stdout).ExecuteContext(ctx); err != nil {
		logger.Get().Errorf("pipeline failed: %v", err)
		stop()
		logger.Sync()
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, out io.Writer) *cobra.Command {
	v := viper.New()
	v.SetDefault(keyPrices, cfg.PricesFile)
	v.SetDefault(keyIncome, cfg.IncomeFile)
	v.SetDefault(keyBasket, cfg.BasketFile)
	v.SetDefault(keyCategories, cfg.CategoriesFile)
	v.SetDefault(keyBaselineYear, cfg.BaselineYear)
	v.SetDefault(keyExport, cfg.ExportPath)

	root := &cobra.Command{
		Use:           "pipeline",
		Short:         "Compute food affordability metrics from the price and income tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.String(keyPrices, "", "item price table (csv or xlsx)")
	flags.String(keyIncome, "", "yearly median income table (csv or xlsx)")
	flags.String(keyBasket, "", "basket definition; empty uses the built-in basket")
	flags.String(keyCategories, "", "item to category table; empty uses the built-in tags")
	flags.Int(keyBaselineYear, 0, "year whose January is the index baseline")
	_ = v.BindPFlags(flags)

	root.AddCommand(
		newRunCmd(v, out),
		newValidateCmd(v, out),
		newLoadCmd(v, cfg, out),
	)
	return root
}

func sourcesFrom(v *viper.Viper) loader.Sources {
	return loader.Sources{
		PricesFile:     v.GetString(keyPrices),
		IncomeFile:     v.GetString(keyIncome),
		BasketFile:     v.GetString(keyBasket),
		CategoriesFile: v.GetString(keyCategories),
		BaselineYear:   v.GetInt(keyBaselineYear),
	}
}

func compute(ctx context.Context, v *viper.Viper) (*affordability.Inputs, *affordability.Result, error) {
	src := sourcesFrom(v)
	if src.BaselineYear == 0 {
		src.BaselineYear = affordability.DefaultBaselineYear
	}
	in, err := loader.Load(ctx, src)
	if err != nil {
		return nil, nil, err
	}
	res, err := affordability.Run(*in)
	if err != nil {
		return nil, nil, err
	}
	return in, res, nil
}

func newRunCmd(v *viper.Viper, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute the metrics and export them as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, res, err := compute(cmd.Context(), v)
			if err != nil {
				return err
			}

			path := v.GetString(keyExport)
			if path == "" {
				path = defaultExportPath
			}
			if err := loader.ExportMetrics(path, res.Metrics); err != nil {
				return err
			}
			logger.Named("pipeline").Infow("Metrics exported", "path", path, "months", len(res.Metrics))

			return printAnnual(out, res.Annual)
		},
	}
	cmd.Flags().String(keyExport, "", "output CSV path (default "+defaultExportPath+")")
	_ = v.BindPFlag(keyExport, cmd.Flags().Lookup(keyExport))
	return cmd
}

func newValidateCmd(v *viper.Viper, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the input tables without writing anything",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, res, err := compute(cmd.Context(), v)
			if err != nil {
				return err
			}
			first, last := res.Costs[0].Month, res.Costs[len(res.Costs)-1].Month
			_, err = fmt.Fprintf(out, "ok: %d prices, %d incomes, %d basket items, %d months (%s to %s)\n",
				len(in.Prices), len(in.Incomes), len(in.Basket), len(res.Costs),
				first.Format("2006-01"), last.Format("2006-01"))
			return err
		},
	}
}

func newLoadCmd(v *viper.Viper, cfg *config.Config, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Reload the input tables into the configured database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbManager, err := database.NewManager(database.NewConfig(cfg))
			if err != nil {
				return err
			}
			defer dbManager.Close()
			if err := dbManager.Migrate(); err != nil {
				return err
			}

			load, err := services.NewDatasetService(dbManager.DB(), sourcesFrom(v)).Reload(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "loaded %s: %d prices over %d months\n", load.ID, load.PriceCount, load.MonthCount)
			return err
		},
	}
}

func printAnnual(out io.Writer, annual []affordability.AnnualMetric) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tMonths\tAvg monthly cost\tRatio\tAvg index\tYoY %\t")
	for _, a := range annual {
		yoy := "-"
		if a.YoYChangePct != nil {
			yoy = a.YoYChangePct.StringFixed(2)
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t\n",
			a.Year, a.Months,
			a.AvgMonthlyCost.StringFixed(2),
			a.Ratio.StringFixed(4),
			a.AvgIndex.StringFixed(2),
			yoy,
		)
	}
	return tw.Flush()
}
