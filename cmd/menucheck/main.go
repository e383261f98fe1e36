package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gameday-grill/web/internal/catalog"
)

func main() {
	// CLI flags
	feed := flag.String("feed", "", "Path to the menu feed file")
	flag.Parse()

	// Fall back to environment variable
	if *feed == "" {
		*feed = os.Getenv("MENU_FEED")
	}

	// Fall back to default
	if *feed == "" {
		*feed = "web/data/menu-items.jsonc"
	}

	cat, err := catalog.LoadFile(*feed)
	if err != nil {
		log.Fatalf("Feed rejected: %v", err)
	}

	var problems []string

	seen := make(map[string]bool)
	for _, item := range cat.Items {
		if item.ID == "" {
			problems = append(problems, fmt.Sprintf("item %q has no id", item.Name))
			continue
		}
		if seen[item.ID] {
			problems = append(problems, fmt.Sprintf("duplicate item id %q", item.ID))
		}
		seen[item.ID] = true
		if item.Name == "" {
			problems = append(problems, fmt.Sprintf("item %q has no name", item.ID))
		}
		if item.Category == "" {
			problems = append(problems, fmt.Sprintf("item %q has no category", item.ID))
		}
		if item.Image == "" {
			problems = append(problems, fmt.Sprintf("item %q has no image", item.ID))
		}
	}

	if cat.Icon(catalog.AllKey) == "" {
		problems = append(problems, fmt.Sprintf("icon map is missing the %q entry", catalog.AllKey))
	}
	for _, category := range cat.Categories {
		if cat.Icon(category) == "" {
			problems = append(problems, fmt.Sprintf("category %q has no icon", category))
		}
	}

	if len(cat.Sides()) == 0 {
		problems = append(problems, fmt.Sprintf("no %q items: meal upgrades will have nothing to offer", catalog.SidesCategory))
	}

	if len(problems) > 0 {
		for _, p := range problems {
			log.Printf("PROBLEM: %s", p)
		}
		log.Fatalf("Feed check failed: %d problem(s)", len(problems))
	}

	log.Printf("Feed OK: %d items across %d categories", len(cat.Items), len(cat.Categories))
}
