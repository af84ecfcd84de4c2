package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/chargen/internal/catalog"
	"github.com/KirkDiggler/chargen/internal/domain/draft"
	"github.com/KirkDiggler/chargen/internal/domain/points"
	"github.com/KirkDiggler/chargen/internal/domain/sheet"
	"github.com/KirkDiggler/chargen/internal/repositories/drafts"
	"github.com/KirkDiggler/chargen/internal/services/chargen"
	"github.com/KirkDiggler/chargen/internal/services/selector"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: inspect-draft <draft-id>")
		fmt.Println("       inspect-draft --owner <owner-id>")
		os.Exit(1)
	}

	ctx := context.Background()

	// Set up Redis
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	// Test connection
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}

	repo := drafts.NewRedis(client)

	if os.Args[1] == "--owner" {
		if len(os.Args) < 3 {
			log.Fatal("--owner needs an owner ID")
		}
		list, listErr := repo.ListByOwner(ctx, os.Args[2])
		if listErr != nil {
			log.Fatalf("Failed to list drafts: %v", listErr)
		}
		fmt.Printf("Found %d drafts:\n", len(list))
		for _, d := range list {
			fmt.Printf("  %s: %s, %d GP\n", d.ID, d.Status, d.Budgets.Primary)
		}
		return
	}

	d, err := repo.Get(ctx, os.Args[1])
	if err != nil {
		log.Fatalf("Failed to get draft: %v", err)
	}

	rules, err := loadCatalog()
	if err != nil {
		log.Fatalf("Failed to load rules: %v", err)
	}

	if err := report(os.Stdout, rules, d); err != nil {
		log.Fatalf("Failed to price draft: %v", err)
	}
}

func loadCatalog() (*catalog.Static, error) {
	if path := os.Getenv("CHARGEN_CATALOG"); path != "" {
		return catalog.LoadFile(path)
	}
	return catalog.Default()
}

// report prints every category of the draft with the price of each item.
// Selectors are attached without touching the stored budgets.
func report(w io.Writer, rules catalog.Catalog, d *draft.Draft) error {
	fmt.Fprintf(w, "Draft %s (owner %s)\n", d.ID, d.OwnerID)
	step := ""
	if d.Flow != nil {
		step = d.Flow.CurrentStepID
	}
	fmt.Fprintf(w, "Status: %s, step: %s, updated %s\n", d.Status, step, d.UpdatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "%s: %d, %s: %d, %s: %d\n",
		draft.BudgetPrimary, d.Budgets.Primary,
		draft.BudgetSecondary, d.Budgets.Secondary,
		draft.BudgetNegativeTraits, d.Budgets.NegativeTraits)

	if d.Hero == nil {
		fmt.Fprintln(w, "No hero")
		return nil
	}

	budget := points.NewCounter(draft.BudgetPrimary, d.Budgets.Primary)
	for _, category := range chargen.Steps {
		cfg := &selector.Config{
			Hero:     d.Hero,
			Category: category,
			Catalog:  rules,
			Budget:   budget,
		}
		if category == sheet.CategoryDisadvantages {
			cfg.Secondary = points.NewCounter(draft.BudgetSecondary, d.Budgets.Secondary)
			cfg.NegativeTraits = points.NewCounter(draft.BudgetNegativeTraits, d.Budgets.NegativeTraits)
		}

		sel := selector.New(cfg)
		if err := sel.Activate(false); err != nil {
			return fmt.Errorf("%s: %w", category, err)
		}
		printCategory(w, sel)
		if err := sel.Deactivate(true); err != nil {
			return fmt.Errorf("%s: %w", category, err)
		}
	}

	fmt.Fprintf(w, "\nSkills:\n")
	for _, name := range d.Hero.SkillNames() {
		fmt.Fprintf(w, "  %s: %s\n", name, d.Hero.Skill(name).Rating)
	}
	return nil
}

func printCategory(w io.Writer, sel *selector.Selector) {
	cost, negative := sel.Cost()
	fmt.Fprintf(w, "\n%s: cost %d", sel.Name(), cost)
	if negative > 0 {
		fmt.Fprintf(w, " (bad traits %d)", negative)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, it := range sel.Items() {
		origin := "chosen"
		if it.Fixed {
			origin = "fixed"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%d\n", it.Label(), origin, sel.Charge(it))
	}
	_ = tw.Flush()
}
