package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/alecthomas/kingpin/v2"

	"moviehub/internal/config"
	"moviehub/internal/database"
	"moviehub/internal/domain"
	"moviehub/internal/logger"
	"moviehub/internal/modules/favorite"
	"moviehub/internal/repository"
	"moviehub/internal/tmdb"
)

var (
	app     = kingpin.New("favorites", "Maintain the local favorites store.")
	dsn     = app.Flag("database", "database DSN (defaults to DATABASE_URL)").Envar("DATABASE_URL").String()
	timeout = app.Flag("timeout", "overall command timeout").Default("30s").Duration()

	listCmd = app.Command("list", "List stored favorites.")

	addCmd = app.Command("add", "Fetch a movie from TMDB and store it as favorite.")
	addID  = addCmd.Arg("id", "TMDB movie id").Required().Int()

	removeCmd = app.Command("remove", "Remove a favorite.")
	removeID  = removeCmd.Arg("id", "TMDB movie id").Required().Int()

	clearCmd = app.Command("clear", "Remove every favorite.")
	clearYes = clearCmd.Flag("yes", "do not ask for confirmation").Short('y').Bool()

	exportCmd = app.Command("export", "Write all favorites as JSON to stdout.")

	importCmd  = app.Command("import", "Store every movie of a JSON export file as favorite.")
	importFile = importCmd.Arg("file", "export file, - for stdin").Default("-").String()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	logger.Init("dev", "warn", false)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, command, os.Stdout); err != nil {
		app.Fatalf("%v", err)
	}
}

func run(ctx context.Context, command string, out io.Writer) error {
	var remote favorite.DetailFetcher = unavailableRemote{}
	if command == addCmd.FullCommand() {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if *dsn == "" {
			*dsn = cfg.DatabaseURL
		}
		client, err := tmdb.New(tmdb.Options{
			BaseURL:     cfg.TMDBBaseURL,
			Token:       cfg.TMDBToken,
			Language:    cfg.TMDBLanguage,
			Timeout:     cfg.TMDBTimeout,
			CacheMaxAge: cfg.TMDBCacheMaxAge,
			RateLimit:   cfg.TMDBRateLimit,
		})
		if err != nil {
			return err
		}
		remote = client
	}

	if *dsn == "" {
		*dsn = "moviehub.db"
	}
	db, err := database.Open(*dsn)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	return execute(ctx, command, favorite.NewService(repository.NewFavoriteRepository(db), remote), out)
}

func execute(ctx context.Context, command string, svc *favorite.Service, out io.Writer) error {
	switch command {
	case listCmd.FullCommand():
		items, err := svc.List(ctx)
		if err != nil {
			return err
		}
		return printTable(out, items)

	case addCmd.FullCommand():
		d, err := svc.MarkByID(ctx, *addID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "added %d %s\n", d.ID, d.Title)

	case removeCmd.FullCommand():
		if err := svc.UnmarkByID(ctx, *removeID); err != nil {
			return err
		}
		fmt.Fprintf(out, "removed %d\n", *removeID)

	case clearCmd.FullCommand():
		if !*clearYes {
			return fmt.Errorf("refusing to clear favorites without --yes")
		}
		if err := svc.ClearAll(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "cleared")

	case exportCmd.FullCommand():
		items, err := svc.List(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)

	case importCmd.FullCommand():
		items, err := readExport(*importFile)
		if err != nil {
			return err
		}
		for _, d := range items {
			if err := svc.MarkFavorite(ctx, d); err != nil {
				return fmt.Errorf("import %d: %w", d.ID, err)
			}
		}
		fmt.Fprintf(out, "imported %d\n", len(items))
	}
	return nil
}

func readExport(path string) ([]domain.MovieDetail, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var items []domain.MovieDetail
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	return items, nil
}

func printTable(out io.Writer, items []domain.MovieDetail) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tRELEASED\tRATING")
	for _, d := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.1f\n", d.ID, d.Title, d.ReleaseDate, d.VoteAverage)
	}
	return w.Flush()
}

// unavailableRemote backs the commands that never talk to TMDB.
type unavailableRemote struct{}

func (unavailableRemote) Detail(context.Context, int) (*domain.MovieDetail, error) {
	return nil, fmt.Errorf("tmdb client not configured for this command")
}
