package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name             string
	ShortDescription string
	Description      string
	PriceCents       int64
	Category         string
}

var catalog = []productSeed{
	{
		Name:             "Kubernetes T-Shirt",
		ShortDescription: "Orchestrate your wardrobe",
		Description:      "Soft cotton tee with the helm wheel front and center. Declaratively comfortable.",
		PriceCents:       2499,
		Category:         "apparel",
	},
	{
		Name:             "Docker Mug",
		ShortDescription: "Containerized caffeine",
		Description:      "Ceramic mug that ships the same coffee to every desk. Works on your machine and everyone else's.",
		PriceCents:       1499,
		Category:         "drinkware",
	},
	{
		Name:             "Terraform Hoodie",
		ShortDescription: "Infrastructure as clothing",
		Description:      "Heavyweight hoodie. Plan before you apply it to your morning routine.",
		PriceCents:       4999,
		Category:         "apparel",
	},
	{
		Name:             "CI/CD Sticker Pack",
		ShortDescription: "Ship stickers continuously",
		Description:      "Twelve die-cut vinyl stickers for laptops that deploy on every merge.",
		PriceCents:       899,
		Category:         "accessories",
	},
	{
		Name:             "Prometheus Poster",
		ShortDescription: "Monitor your walls",
		Description:      "A2 matte print of the flame logo. Alerts not included.",
		PriceCents:       1799,
		Category:         "prints",
	},
	{
		Name:             "Ansible Notebook",
		ShortDescription: "Playbooks on paper",
		Description:      "Dot-grid notebook for runbooks, playbooks, and idempotent ideas.",
		PriceCents:       1299,
		Category:         "stationery",
	},
	{
		Name:             "Linux Penguin Plush",
		ShortDescription: "Tux for your desk",
		Description:      "Plush Tux, kernel-panic resistant. Pairs well with long compile times.",
		PriceCents:       2199,
		Category:         "toys",
	},
	{
		Name:             "Git Commit Enamel Pin",
		ShortDescription: "Wear your history",
		Description:      "Enamel pin of a commit graph. No force pushes required.",
		PriceCents:       999,
		Category:         "accessories",
	},
}

// Apply inserts the demo catalog. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	for _, p := range catalog {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %q: %w", p.Name, err)
		}
	}
	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, short_description, description, price_cents, category)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (name) DO UPDATE
SET short_description = EXCLUDED.short_description,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    category = EXCLUDED.category
`
	_, err := pool.Exec(ctx, q, p.Name, p.ShortDescription, p.Description, p.PriceCents, p.Category)
	return err
}
