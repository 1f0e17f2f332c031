package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/okian/skillswap/internal/adapters/dataset"
	"github.com/okian/skillswap/internal/adapters/repository"
	service "github.com/okian/skillswap/internal/app"
	"github.com/okian/skillswap/internal/config"
	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/search"
	"github.com/okian/skillswap/internal/domain/types"
	"github.com/spf13/cobra"
)

type searchFlags struct {
	dataset   string
	category  string
	level     string
	skill     string
	minRating float64
	discover  bool
	limit     int
	offset    int
	asJSON    bool
}

func newSearchCmd() *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "search [term...]",
		Short: "Search users in a dataset without starting the service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			path := cfg.DatasetPath
			if f.dataset != "" {
				path = f.dataset
			}
			cat, err := dataset.New().Load(ctx, path)
			if err != nil {
				return err
			}
			svc := service.New(repository.NewMemStore(ctx, cat), service.WithMaxPageSize(cfg.MaxPageSize))

			level, err := levelFlag(f.level)
			if err != nil {
				return err
			}

			term := strings.Join(args, " ")
			page := types.Page{Limit: f.limit, Offset: f.offset}
			var res types.SearchResult
			if f.discover {
				res, err = svc.Discover(ctx, term, f.skill, page)
			} else {
				q := search.BrowseQuery(term, f.category, level)
				q.Skill = f.skill
				q.MinRating = f.minRating
				res, err = svc.SearchUsers(ctx, q, page)
			}
			if err != nil {
				return err
			}

			if f.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printUsers(cmd.OutOrStdout(), res)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.dataset, "dataset", "", "dataset file; defaults to the configured dataset or the built-in seed")
	fl.StringVar(&f.category, "category", "", "exact skill category, or all")
	fl.StringVar(&f.level, "level", "", "skill level in any case (Beginner, Intermediate, Advanced, Expert), or all")
	fl.StringVar(&f.skill, "skill", "", "exact skill name")
	fl.Float64Var(&f.minRating, "min-rating", 0, "minimum rating (0-5)")
	fl.BoolVar(&f.discover, "discover", false, "match names and skill names only")
	fl.IntVar(&f.limit, "limit", types.DefaultPageSize, "page size")
	fl.IntVar(&f.offset, "offset", 0, "page offset")
	fl.BoolVar(&f.asJSON, "json", false, "print the raw result as JSON")
	return cmd
}

// levelFlag canonicalizes a --level value. Empty and "all" pass through.
func levelFlag(raw string) (string, error) {
	if raw == "" || strings.EqualFold(raw, search.AllValues) {
		return raw, nil
	}
	lvl, ok := model.ParseLevel(raw)
	if !ok {
		return "", fmt.Errorf("unknown level %q: want one of %v or %s", raw, model.Levels(), search.AllValues)
	}
	return string(lvl), nil
}

func printUsers(w io.Writer, res types.SearchResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tRATING\tOFFERS\tWANTS")
	for _, u := range res.Users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%s\t%s\n",
			u.ID, u.Name, u.Location, u.Rating, skillNames(u.SkillsOffered), skillNames(u.SkillsWanted))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d users\n", len(res.Users), res.TotalCount)
	return err
}

func skillNames(skills []model.Skill) string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}
