package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ahinestrog/bookshop/internal/cart"
	"github.com/ahinestrog/bookshop/internal/catalog"
	"github.com/ahinestrog/bookshop/internal/config"
	"github.com/ahinestrog/bookshop/internal/db"
	"github.com/ahinestrog/bookshop/internal/member"
	"github.com/ahinestrog/bookshop/internal/menu"
	"github.com/ahinestrog/bookshop/internal/order"
)

func main() {
	// Logger
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	sqldb, err := db.Open(cfg.DBPath)
	must(err)
	defer sqldb.Close()

	ctx := context.Background()
	must(db.Migrate(ctx, sqldb))
	if cfg.SeedOnStart {
		must(db.SeedBooks(ctx, sqldb))
	}

	// Order events are optional: without a broker the store still checks out.
	var events order.Publisher
	if cfg.RabbitURL != "" {
		rb, err := order.NewRabbit(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			log.Warn().Err(err).Msg("rabbit unavailable, order events disabled")
		} else {
			defer rb.Close()
			events = rb
		}
	}

	catalogRepo := catalog.NewRepository(sqldb)
	resolver, err := catalog.NewCachedResolver(catalogRepo, 256)
	must(err)

	members := member.NewService(member.NewRepository(sqldb), log.Logger)
	carts := cart.NewManager(cart.NewRepository(sqldb), log.Logger)
	engine := order.NewEngine(sqldb, resolver, events, log.Logger)

	m := menu.New(os.Stdin, os.Stdout, members, catalogRepo, resolver, carts, engine, log.Logger)
	m.Run(ctx)
}

func must(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}
