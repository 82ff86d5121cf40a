package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/pcode-matching/internal/admin"
	"github.com/pcode-matching/internal/config"
	"github.com/pcode-matching/internal/country"
	"github.com/pcode-matching/internal/db"
	"github.com/pcode-matching/internal/registry"
	"github.com/pcode-matching/internal/source"
	"github.com/pcode-matching/internal/web"
)

var (
	adminUnitsFile string
	formatsFile    string
	countriesFile  string
	onlyCountries  []string
	useDB          bool
	maxLevel       int
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "pcode-matcher",
		Short: "Admin p-code resolution for humanitarian gazetteers",
		Long:  `Resolves free-form admin unit names and drifted p-codes to canonical gazetteer p-codes`,
	}

	rootCmd.PersistentFlags().StringVar(&adminUnitsFile, "admin-units", "data/admin_units.csv", "admin units CSV file")
	rootCmd.PersistentFlags().StringVar(&formatsFile, "formats", "", "p-code formats CSV file")
	rootCmd.PersistentFlags().StringVar(&countriesFile, "countries", "data/countries.csv", "countries CSV file")
	rootCmd.PersistentFlags().StringSliceVar(&onlyCountries, "only-countries", nil, "restrict CSV loading to these ISO3 codes")
	rootCmd.PersistentFlags().BoolVar(&useDB, "db", false, "load data from PostgreSQL instead of CSV files")
	rootCmd.PersistentFlags().IntVar(&maxLevel, "max-level", 2, "deepest admin level to load")

	rootCmd.AddCommand(createResolveCmd())
	rootCmd.AddCommand(createCheckCmd())
	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createPingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadLevels builds one resolution engine per admin level up to
// maxLevel and wires parent registries for repair validation.
func loadLevels() (map[int]*admin.Level, error) {
	var (
		countryRows []country.Row
		formatRows  []admin.FormatRow
		adminRows   map[int][]registry.Row
		err         error
	)

	if useDB {
		conn, cerr := db.NewConnection()
		if cerr != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", cerr)
		}
		defer conn.Close()

		countryRows, err = conn.LoadCountryRows()
		if err != nil {
			return nil, err
		}
		formatRows, err = conn.LoadFormatRows()
		if err != nil {
			return nil, err
		}
		adminRows = make(map[int][]registry.Row)
		for n := 1; n <= maxLevel; n++ {
			adminRows[n], err = conn.LoadAdminRows(n)
			if err != nil {
				return nil, err
			}
		}
	} else {
		countryRows, err = source.ReadCountryRows(countriesFile)
		if err != nil {
			return nil, err
		}
		if formatsFile != "" {
			formatRows, err = source.ReadFormatRows(formatsFile)
			if err != nil {
				return nil, err
			}
		}
		adminRows = make(map[int][]registry.Row)
		for n := 1; n <= maxLevel; n++ {
			adminRows[n], err = source.ReadAdminRows(adminUnitsFile, n, onlyCountries)
			if err != nil {
				return nil, err
			}
		}
	}

	countries, err := country.NewTable(countryRows)
	if err != nil {
		return nil, fmt.Errorf("failed to build country table: %w", err)
	}

	levels := make(map[int]*admin.Level, maxLevel)
	var parents []*admin.Level
	for n := 1; n <= maxLevel; n++ {
		if len(adminRows[n]) == 0 {
			continue
		}
		level := admin.New(countries, n, admin.Config{}, nil)
		if err := level.Setup(adminRows[n]); err != nil {
			return nil, fmt.Errorf("failed to set up admin level %d: %w", n, err)
		}
		if len(formatRows) > 0 {
			if err := level.LoadFormats(formatRows); err != nil {
				return nil, fmt.Errorf("failed to load formats for admin level %d: %w", n, err)
			}
		}
		if len(parents) > 0 {
			level.SetParentAdminsFromLevels(parents)
		}
		levels[n] = level
		parents = append(parents, level)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no admin units loaded")
	}
	return levels, nil
}

// createResolveCmd creates the resolve subcommand
func createResolveCmd() *cobra.Command {
	var (
		levelN  int
		noFuzzy bool
		logname string
	)
	cmd := &cobra.Command{
		Use:   "resolve [country-iso3] [input]",
		Short: "Resolve a name or p-code to a canonical p-code",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			levels, err := loadLevels()
			if err != nil {
				log.Fatalf("Failed to load data: %v", err)
			}
			level := levels[levelN]
			if level == nil {
				log.Fatalf("No data for admin level %d", levelN)
			}

			pcode, exact := level.Resolve(args[0], args[1], !noFuzzy, logname)
			if pcode == "" {
				fmt.Printf("No match for %s in %s\n", args[1], args[0])
			} else {
				fmt.Printf("%s (exact=%v)\n", pcode, exact)
			}
			for _, rec := range level.Matches() {
				fmt.Println(rec)
			}
			for _, rec := range level.Ignored() {
				fmt.Println(rec)
			}
			for _, rec := range level.Errors() {
				fmt.Println(rec)
			}
		},
	}
	cmd.Flags().IntVar(&levelN, "level", 1, "admin level to resolve against")
	cmd.Flags().BoolVar(&noFuzzy, "no-fuzzy", false, "disable fuzzy name matching")
	cmd.Flags().StringVar(&logname, "context", "cli", "context label for diagnostics")
	return cmd
}

// createCheckCmd creates the check subcommand
func createCheckCmd() *cobra.Command {
	var (
		levelN  int
		noFuzzy bool
		logname string
	)
	cmd := &cobra.Command{
		Use:   "check [inputs.csv]",
		Short: "Reconcile a dataset of (country, input) rows and report",
		Long:  `Resolves every row of an inputs CSV against the loaded registry and prints the match, ignored and error reports. With no file, just reports what was loaded.`,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			levels, err := loadLevels()
			if err != nil {
				log.Fatalf("Failed to load data: %v", err)
			}
			for n := 1; n <= maxLevel; n++ {
				level := levels[n]
				if level == nil {
					continue
				}
				fmt.Printf("Admin level %d: %d p-codes\n", n, len(level.PCodes()))
			}
			if len(args) == 0 {
				return
			}

			level := levels[levelN]
			if level == nil {
				log.Fatalf("No data for admin level %d", levelN)
			}
			inputs, err := source.ReadInputRows(args[0])
			if err != nil {
				log.Fatalf("Failed to read inputs: %v", err)
			}

			resolved := 0
			for _, row := range inputs {
				pcode, exact := level.Resolve(row.CountryISO3, row.Input, !noFuzzy, logname)
				if pcode == "" {
					fmt.Printf("%s,%s,,\n", row.CountryISO3, row.Input)
					continue
				}
				resolved++
				fmt.Printf("%s,%s,%s,%v\n", row.CountryISO3, row.Input, pcode, exact)
			}
			fmt.Printf("Resolved %d of %d inputs\n", resolved, len(inputs))

			for _, rec := range level.Matches() {
				fmt.Println(rec)
			}
			for _, rec := range level.Ignored() {
				fmt.Println(rec)
			}
			for _, rec := range level.Errors() {
				fmt.Println(rec)
			}
		},
	}
	cmd.Flags().IntVar(&levelN, "level", 1, "admin level to resolve against")
	cmd.Flags().BoolVar(&noFuzzy, "no-fuzzy", false, "disable fuzzy name matching")
	cmd.Flags().StringVar(&logname, "context", "check", "context label for diagnostics")
	return cmd
}

// createServeCmd creates the serve subcommand
func createServeCmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resolution API over HTTP",
		Run: func(cmd *cobra.Command, args []string) {
			levels, err := loadLevels()
			if err != nil {
				log.Fatalf("Failed to load data: %v", err)
			}

			webConfig := web.DefaultConfig()
			if configFile != "" {
				webConfig, err = web.LoadConfig(configFile)
				if err != nil {
					log.Fatalf("Failed to load config: %v", err)
				}
			}

			server, err := web.NewServer(webConfig, levels)
			if err != nil {
				log.Fatalf("Failed to create server: %v", err)
			}
			if err := server.Start(); err != nil {
				log.Fatalf("Server failed: %v", err)
			}
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "server config JSON file")
	return cmd
}

// createPingCmd creates a command to test database connectivity
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		Run: func(cmd *cobra.Command, args []string) {
			conn, err := db.NewConnection()
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer conn.Close()
			fmt.Println("Database connection successful!")

			var count int
			err = conn.DB.QueryRow("SELECT COUNT(*) FROM admin_unit").Scan(&count)
			if err != nil {
				log.Printf("Error counting admin_unit records: %v", err)
			} else {
				fmt.Printf("Admin units loaded: %d\n", count)
			}

			err = conn.DB.QueryRow("SELECT COUNT(*) FROM pcode_format").Scan(&count)
			if err != nil {
				log.Printf("Error counting pcode_format records: %v", err)
			} else {
				fmt.Printf("P-code formats loaded: %d\n", count)
			}
		},
	}
}
