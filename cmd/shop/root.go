package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"MiniShop/internal/catalog"
	"MiniShop/internal/config"
	"MiniShop/internal/tui"
	"MiniShop/pkg/kit"
)

type rootFlags struct {
	configPath  string
	catalogFile string
	catalogDSN  string
	catalogURL  string
	logFile     string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:   "shop",
		Short: "Browse the catalog and fill a cart from the terminal",
		Long: `shop is an interactive terminal storefront.

Search the catalog, narrow it by price and add items to an in-memory cart.
The cart lives only as long as the program runs.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&f.catalogFile, "catalog", "", "YAML or JSON product file (default: bundled catalog)")
	pf.StringVar(&f.catalogDSN, "dsn", "", "Postgres DSN to read the products table from")
	pf.StringVar(&f.catalogURL, "catalog-url", "", "storefront service to copy the catalog from")
	root.Flags().StringVar(&f.logFile, "log-file", "", "where the interactive UI writes its log")

	root.AddCommand(newListCmd(f), newPresetsCmd())
	return root
}

func (f *rootFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("catalog") {
		cfg.Catalog.File = f.catalogFile
	}
	if cmd.Flags().Changed("dsn") {
		cfg.Catalog.DSN = f.catalogDSN
	}
	if cmd.Flags().Changed("catalog-url") {
		cfg.Catalog.URL = f.catalogURL
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	return cfg, nil
}

func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	src, closer, err := catalog.OpenSource(cfg.Catalog.File, cfg.Catalog.DSN, cfg.Catalog.URL)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = closer.Close() }()

	return catalog.Load(ctx, src)
}

func runInteractive(cmd *cobra.Command, f *rootFlags) error {
	cfg, err := f.load(cmd)
	if err != nil {
		return err
	}

	log, err := kit.NewFileLogger("shop", cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cat, err := loadCatalog(cmd.Context(), cfg)
	if err != nil {
		log.Error("load catalog failed", zap.Error(err))
		return err
	}
	log.Info("catalog loaded", zap.Int("products", cat.Len()))

	m := tui.New(cat,
		tui.WithNoticeTTL(cfg.Cart.NoticeTTL),
		tui.WithLogger(log),
	)
	_, err = tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	).Run()
	return err
}

func newListCmd(f *rootFlags) *cobra.Command {
	var search, preset, lo, hi string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the catalog filtered by search text and price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			r, err := catalog.ParseRange(preset, lo, hi)
			if err != nil {
				return fmt.Errorf("%w: use --price with one of the presets or --min/--max", err)
			}
			cat, err := loadCatalog(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return printProducts(cmd.OutOrStdout(), cat.Filter(search, r))
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive title substring")
	cmd.Flags().StringVarP(&preset, "price", "p", "", "price preset id (see 'shop presets')")
	cmd.Flags().StringVar(&lo, "min", "", "lowest price, inclusive")
	cmd.Flags().StringVar(&hi, "max", "", "highest price, inclusive")
	cmd.MarkFlagsMutuallyExclusive("price", "min")
	cmd.MarkFlagsMutuallyExclusive("price", "max")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "Print the selectable price ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tMIN\tMAX")
			for _, p := range catalog.Presets() {
				fmt.Fprintf(tw, "%s\t%s\t%g\t%g\n", p.ID, p.Label, p.Range.Min, p.Range.Max)
			}
			return tw.Flush()
		},
	}
}

func printProducts(w io.Writer, items []catalog.Product) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tPRICE\tIMAGE")
	for _, p := range items {
		fmt.Fprintf(tw, "%s\t%g\t%s\n", p.Title, p.Price, p.Image)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d item(s)\n", len(items))
	return err
}
