// Command seed-db loads the product catalog and demo customers into the
// database.
//
// The catalog arrives as gzipped NDJSON shards (catalog*.gz). Shards may
// overlap; a bloom filter in front of an exact set keeps the common
// novel-product path cheap while duplicates are skipped. Customers and
// their demo carts come from a single JSON file.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/storesys/checkout/internal/repository"
)

const (
	bloomCapacity = 1_000_000
	bloomFPR      = 0.001
)

type productJSON struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Weight  float64         `json:"weight"`
	Fragile bool            `json:"fragile"`
}

type customerJSON struct {
	ID     string     `json:"id"`
	Region string     `json:"region"`
	Tier   string     `json:"tier"`
	Carts  []cartJSON `json:"carts"`
}

type cartJSON struct {
	ID    string `json:"id"`
	Items []struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
}

func main() {
	var (
		databaseURL   string
		catalogDir    string
		customersFile string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&catalogDir, "catalog-dir", "data", "directory containing catalog*.gz shards")
	flag.StringVar(&customersFile, "customers-file", "db/seed/customers.json", "path to customers JSON file")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, catalogDir, customersFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, catalogDir, customersFile string) error {
	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	shards, err := filepath.Glob(filepath.Join(catalogDir, "catalog*.gz"))
	if err != nil {
		return errors.Wrap(err, "list catalog shards")
	}
	if len(shards) > 0 {
		if err := seedProducts(ctx, pool, shards); err != nil {
			return errors.Wrap(err, "seed products")
		}
	} else {
		slog.Info("no catalog shards found, skipping products", slog.String("dir", catalogDir))
	}

	if customersFile != "" {
		if err := seedCustomers(ctx, pool, customersFile); err != nil {
			return errors.Wrap(err, "seed customers")
		}
	}

	return nil
}

// seedProducts decompresses and parses the shards concurrently, dedupes
// product IDs across shards, and upserts the survivors in one batch per
// shard fan-in.
func seedProducts(ctx context.Context, pool *pgxpool.Pool, shards []string) error {
	slog.Info("seeding products", slog.Int("shards", len(shards)))

	products := make(chan productJSON, 1024)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(products)

		parsers, pctx := errgroup.WithContext(gctx)
		for _, shard := range shards {
			parsers.Go(func() error {
				return parseShard(pctx, shard, products)
			})
		}
		return parsers.Wait()
	})

	var inserted, skipped int
	g.Go(func() error {
		// The bloom filter answers "definitely new" cheaply; only bloom
		// hits pay for the exact set lookup that rules out false positives.
		filter := bloom.NewWithEstimates(bloomCapacity, bloomFPR)
		seen := make(map[string]struct{})

		batch := &pgx.Batch{}
		for p := range products {
			if filter.TestString(p.ID) {
				if _, dup := seen[p.ID]; dup {
					skipped++
					continue
				}
			}
			filter.AddString(p.ID)
			seen[p.ID] = struct{}{}

			batch.Queue(
				`INSERT INTO products (id, name, price, weight, fragile)
				 VALUES ($1, $2, $3, $4, $5)
				 ON CONFLICT (id) DO UPDATE
				 SET name = EXCLUDED.name, price = EXCLUDED.price,
				     weight = EXCLUDED.weight, fragile = EXCLUDED.fragile`,
				p.ID, p.Name, p.Price, p.Weight, p.Fragile,
			)
			inserted++
		}
		return pool.SendBatch(gctx, batch).Close()
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("products seeded", slog.Int("inserted", inserted), slog.Int("duplicates_skipped", skipped))
	return nil
}

// parseShard streams one gzipped NDJSON shard into the products channel.
func parseShard(ctx context.Context, path string, out chan<- productJSON) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "gunzip %s", path)
	}
	defer gz.Close()

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}

		var p productJSON
		if err := json.Unmarshal(scanner.Bytes(), &p); err != nil {
			return errors.Wrapf(err, "parse %s:%d", path, line)
		}
		if p.ID == "" {
			return errors.Errorf("parse %s:%d: product id is empty", path, line)
		}

		select {
		case out <- p:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return errors.Wrapf(scanner.Err(), "read %s", path)
}

// seedCustomers loads customers and their demo carts from a JSON file.
func seedCustomers(ctx context.Context, pool *pgxpool.Pool, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}

	var customers []customerJSON
	if err := json.Unmarshal(raw, &customers); err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}

	batch := &pgx.Batch{}
	carts := 0
	for _, c := range customers {
		batch.Queue(
			`INSERT INTO customers (id, region, tier) VALUES ($1, $2, $3)
			 ON CONFLICT (id) DO UPDATE SET region = EXCLUDED.region, tier = EXCLUDED.tier`,
			c.ID, c.Region, c.Tier,
		)
		for _, cart := range c.Carts {
			carts++
			batch.Queue(
				`INSERT INTO carts (id, customer_id) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
				cart.ID, c.ID,
			)
			batch.Queue(`DELETE FROM cart_items WHERE cart_id = $1`, cart.ID)
			for i, item := range cart.Items {
				batch.Queue(
					`INSERT INTO cart_items (cart_id, product_id, quantity, position)
					 VALUES ($1, $2, $3, $4)`,
					cart.ID, item.ProductID, item.Quantity, i,
				)
			}
		}
	}

	if err := pool.SendBatch(ctx, batch).Close(); err != nil {
		return errors.Wrap(err, "write customers")
	}

	slog.Info("customers seeded", slog.Int("customers", len(customers)), slog.Int("carts", carts))
	return nil
}
