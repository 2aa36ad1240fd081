package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wanderlist/internal/config"
	"github.com/wanderlist/internal/enrich"
	"github.com/wanderlist/internal/gmaps"
	"github.com/wanderlist/internal/importer"
	"github.com/wanderlist/internal/match"
	"github.com/wanderlist/internal/place"
	"github.com/wanderlist/internal/repo"
	"github.com/wanderlist/internal/syncstate"
	"github.com/wanderlist/internal/temple"
)

var (
	ok   = color.New(color.FgGreen)
	warn = color.New(color.FgYellow)
	info = color.New(color.FgCyan)
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "places",
		Short: "Personal places database with deduplication",
		Long:  `Aggregates places to visit from manual entry, Google Maps and text imports into a Notion database, with fuzzy duplicate detection and metadata enrichment`,
	}

	rootCmd.AddCommand(createPingCmd())
	rootCmd.AddCommand(createAddCmd())
	rootCmd.AddCommand(createImportCmd())
	rootCmd.AddCommand(createDedupeCmd())
	rootCmd.AddCommand(createStatsCmd())
	rootCmd.AddCommand(createBackfillCmd())
	rootCmd.AddCommand(createClassifyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// openRepository picks a repository from the PLACES_BACKEND setting:
// "notion" (default), "postgres", or "memory" for dry runs.
func openRepository() (repo.PlacesRepository, error) {
	backend := config.GetEnv("PLACES_BACKEND", "notion")

	switch backend {
	case "notion":
		creds, err := config.Require("NOTION_API_KEY", "NOTION_DATABASE_ID")
		if err != nil {
			return nil, err
		}
		return repo.NewNotionRepository(creds["NOTION_API_KEY"], creds["NOTION_DATABASE_ID"]), nil

	case "postgres":
		db, err := repo.OpenPostgres(
			config.GetEnv("PGHOST", "localhost"),
			config.GetEnv("PGPORT", "5432"),
			config.GetEnv("PGUSER", "places"),
			config.GetEnv("PGPASSWORD", "places"),
			config.GetEnv("PGDATABASE", "places"),
		)
		if err != nil {
			return nil, err
		}
		pg := repo.NewPostgresRepository(db)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			return nil, err
		}
		return pg, nil

	case "memory":
		return repo.NewMemoryRepository(), nil

	default:
		return nil, fmt.Errorf("unknown PLACES_BACKEND %q", backend)
	}
}

func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test repository connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepository()
			if err != nil {
				return err
			}

			places, err := r.ListAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("repository check failed: %w", err)
			}

			ok.Printf("Repository connection successful!\n")
			fmt.Printf("Places stored: %d\n", len(places))
			return nil
		},
	}
}

func createAddCmd() *cobra.Command {
	var (
		category string
		placeURL string
		addr     string
		source   string
		status   string
		notes    string
		lat, lon float64
		force    bool
		skip     bool
		noMerge  bool
		geocode  bool
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a place with duplicate detection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepository()
			if err != nil {
				return err
			}

			candidate := place.Place{
				Name:     strings.TrimSpace(args[0]),
				Category: place.Category(category),
				URL:      placeURL,
				Sources:  []string{source},
				Status:   place.Status(status),
				Notes:    notes,
			}
			if candidate.Name == "" {
				return fmt.Errorf("place name is required")
			}

			if lat != 0 || lon != 0 || addr != "" {
				candidate.Location = &place.Location{Lat: lat, Lon: lon, Address: addr}
			}

			// Resolve coordinates and address before the dedupe pass
			// so the location signals can fire.
			if geocode && !candidate.HasCoordinates() {
				maps := gmaps.NewClient(config.GetEnv("GOOGLE_MAPS_API_KEY", ""))
				details, err := maps.SearchPlace(cmd.Context(), candidate.Name)
				if err != nil {
					warn.Printf("Geocoding failed, continuing with text data: %v\n", err)
				} else if details != nil {
					candidate.Location = &place.Location{
						Lat:     details.Lat,
						Lon:     details.Lon,
						Name:    details.Name,
						Address: details.Address,
					}
					if candidate.URL == "" {
						candidate.URL = details.URL
					}
					if candidate.Category == "" {
						candidate.Category = place.Category(details.Category)
					}
					ok.Printf("Found on Google Maps: %s\n", details.Address)
				}
			}

			candidate = enrich.NewEnricher().Enhance(candidate)

			info.Println("Checking for duplicates...")

			resolver := match.NewResolver(r)
			res, err := resolver.Resolve(cmd.Context(), candidate, match.Options{
				Force: force,
				Merge: !noMerge && !skip,
				Skip:  skip,
			})
			if err != nil {
				return err
			}

			printResolution(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category (Restaurant, Cafe, Bar, Temple, Museum, Park, Hotel, Shop, Other)")
	cmd.Flags().StringVar(&placeURL, "url", "", "Reference URL (map link)")
	cmd.Flags().StringVar(&addr, "address", "", "Formatted address")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude")
	cmd.Flags().StringVar(&source, "source", "Manual", "Provenance tag")
	cmd.Flags().StringVar(&status, "status", string(place.StatusWantToGo), "Status (Want to go, Visited, Maybe)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	cmd.Flags().BoolVar(&force, "force", false, "Create without checking for duplicates")
	cmd.Flags().BoolVar(&skip, "skip", false, "Skip when a duplicate is found")
	cmd.Flags().BoolVar(&noMerge, "no-merge", false, "Report duplicates instead of merging")
	cmd.Flags().BoolVar(&geocode, "geocode", true, "Look up coordinates via Google Maps")

	return cmd
}

func createImportCmd() *cobra.Command {
	var (
		source  string
		skipDup bool
		geocode bool
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import places from a text file",
		Long:  `Import a plain-text place list. Supports bare names, "Name, City", "Name - City" and Google Maps URLs; # and // lines are comments`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepository()
			if err != nil {
				return err
			}

			entries, err := importer.ParseFile(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Parsed %d place(s) from %s\n\n", len(entries), args[0])

			maps := gmaps.NewClient(config.GetEnv("GOOGLE_MAPS_API_KEY", ""))
			enricher := enrich.NewEnricher()

			var candidates []place.Place
			for _, entry := range entries {
				candidate := place.Place{
					Name:     entry.Name,
					Category: place.CategoryOther,
					URL:      entry.URL,
					Sources:  []string{source},
					Status:   place.StatusWantToGo,
					Notes:    fmt.Sprintf("Imported from %s", args[0]),
				}

				if geocode {
					query := entry.Name
					if entry.Location != "" {
						query = entry.Name + ", " + entry.Location
					}
					details, err := maps.SearchPlace(cmd.Context(), query)
					if err != nil {
						warn.Printf("  %s: geocoding failed, using text data\n", entry.Name)
					} else if details != nil {
						candidate.Location = &place.Location{
							Lat:     details.Lat,
							Lon:     details.Lon,
							Name:    details.Name,
							Address: details.Address,
						}
						candidate.City = details.City
						candidate.Country = details.Country
						if details.Category != "" {
							candidate.Category = place.Category(details.Category)
						}
						if candidate.URL == "" {
							candidate.URL = details.URL
						}
					}
				}

				candidates = append(candidates, enricher.Enhance(candidate))
			}

			opts := match.DefaultOptions()
			if skipDup {
				opts = match.Options{Skip: true}
			}

			result := importer.BatchImport(cmd.Context(), match.NewResolver(r), candidates, opts)

			fmt.Println("\nSummary:")
			ok.Printf("  Created: %d\n", len(result.Created))
			info.Printf("  Merged:  %d\n", len(result.Merged))
			warn.Printf("  Skipped: %d\n", len(result.Skipped))
			if len(result.Errors) > 0 {
				color.Red("  Errors:  %d", len(result.Errors))
				for _, e := range result.Errors {
					color.Red("    %s: %v", e.Place.Name, e.Err)
				}
			}

			store := syncstate.NewStore(config.GetEnv("SYNC_STATE_PATH", "data/sync-state.json"))
			if _, err := store.Update("textImport", len(result.Created)+len(result.Merged)); err != nil {
				warn.Printf("Failed to record sync state: %v\n", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "Text Import", "Provenance tag for imported places")
	cmd.Flags().BoolVar(&skipDup, "skip-duplicates", false, "Skip duplicates instead of merging")
	cmd.Flags().BoolVar(&geocode, "geocode", true, "Look up coordinates via Google Maps")

	return cmd
}

func createDedupeCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "dedupe [name]",
		Short: "Check a name against the collection without writing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepository()
			if err != nil {
				return err
			}

			matcher := match.NewMatcher(r)
			matcher.SetDebug(verbose)

			matches, err := matcher.FindMatches(cmd.Context(), place.Place{Name: args[0]})
			if err != nil {
				return err
			}

			if len(matches) == 0 {
				ok.Println("No duplicates found")
				return nil
			}

			fmt.Printf("Found %d potential duplicate(s):\n\n", len(matches))
			for _, m := range matches {
				fmt.Printf("  %.0f%%  %s\n", m.Score, m.Place.Name)
				for _, reason := range m.Reasons {
					fmt.Printf("        - %s\n", reason)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log per-pair scoring")
	return cmd
}

func createStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepository()
			if err != nil {
				return err
			}

			places, err := r.ListAll(cmd.Context())
			if err != nil {
				return err
			}

			stats := place.ComputeStats(places)

			fmt.Printf("Total places: %d\n", stats.Total)
			printCounts("By category", stats.ByCategory)
			printCounts("By status", stats.ByStatus)
			printCounts("By source", stats.BySource)
			return nil
		},
	}
}

func printCounts(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	for label, count := range counts {
		fmt.Printf("  %-20s %d\n", label, count)
	}
}

func createBackfillCmd() *cobra.Command {
	backfillCmd := &cobra.Command{
		Use:   "backfill",
		Short: "Back-fill derived fields on stored places",
	}

	backfillCmd.AddCommand(createBackfillCityCountryCmd())
	return backfillCmd
}

func createBackfillCityCountryCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "city-country",
		Short: "Derive city and country from stored addresses",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepository()
			if err != nil {
				return err
			}

			places, err := r.ListAll(cmd.Context())
			if err != nil {
				return err
			}

			updated := 0
			for _, p := range places {
				city, country, changed := enrich.CityCountryUpdates(p)
				if !changed {
					continue
				}

				fmt.Printf("%s\n", p.Name)
				if city != "" {
					fmt.Printf("  City: %s -> %s\n", orDash(p.City), city)
				}
				if country != "" {
					fmt.Printf("  Country: %s -> %s\n", orDash(p.Country), country)
				}

				if !dryRun {
					_, err := r.Update(cmd.Context(), p.ID, repo.PlaceUpdates{City: city, Country: country})
					if err != nil {
						return fmt.Errorf("failed to update %s: %w", p.Name, err)
					}
				}
				updated++
			}

			ok.Printf("\nUpdated %d place(s)\n", updated)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show updates without writing")
	return cmd
}

func createClassifyCmd() *cobra.Command {
	var (
		dryRun    bool
		tableFile string
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify temples missing tradition tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepository()
			if err != nil {
				return err
			}

			enricher := enrich.NewEnricher()
			if tableFile != "" {
				classifier, err := temple.NewClassifierFromFile(tableFile)
				if err != nil {
					return err
				}
				enricher = enrich.NewEnricherWithClassifier(classifier)
			}

			places, err := r.ListAll(cmd.Context())
			if err != nil {
				return err
			}

			classified := 0
			for _, p := range places {
				if p.Category != place.CategoryTemple || len(p.TempleTypes) > 0 {
					continue
				}

				enhanced := enricher.Enhance(p)
				if len(enhanced.TempleTypes) == 0 {
					continue
				}

				fmt.Printf("%s: %s", p.Name, strings.Join(enhanced.TempleTypes, ", "))
				if deity := enricher.Deity(p.Name); deity != "" {
					fmt.Printf(" (deity: %s)", deity)
				}
				fmt.Println()

				if !dryRun {
					_, err := r.Update(cmd.Context(), p.ID, repo.PlaceUpdates{TempleTypes: enhanced.TempleTypes})
					if err != nil {
						return fmt.Errorf("failed to update %s: %w", p.Name, err)
					}
				}
				classified++
			}

			ok.Printf("\nClassified %d temple(s)\n", classified)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show classifications without writing")
	cmd.Flags().StringVar(&tableFile, "table", "", "YAML classification table override")
	return cmd
}

func printResolution(res *match.Resolution) {
	fmt.Println()
	switch res.Action {
	case match.ActionCreated:
		ok.Println("Place created successfully!")
	case match.ActionMerged:
		ok.Println("Merged with existing place!")
		if res.Match != nil {
			fmt.Printf("  Match score: %.0f%%\n", res.Match.Score)
			fmt.Printf("  Reasons: %s\n", strings.Join(res.Match.Reasons, ", "))
		}
	case match.ActionSkipped:
		warn.Println("Skipped: duplicate found")
	case match.ActionDuplicateFound:
		warn.Printf("Found %d potential duplicate(s):\n", len(res.Matches))
		for _, m := range res.Matches {
			fmt.Printf("  %.0f%%  %s\n", m.Score, m.Place.Name)
		}
	}
	fmt.Printf("\n%s\n", res.Message)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
