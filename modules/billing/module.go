// Package billing assembles the recurring-billing ledger into a mountable
// HTTP module: currency registry, plan catalog, subscriber registry and the
// billing engine behind a chi router.
package billing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LarryRage/blockbiller/pkg/authz"
	engine "github.com/LarryRage/blockbiller/pkg/billing"
	"github.com/LarryRage/blockbiller/pkg/catalog"
	"github.com/LarryRage/blockbiller/pkg/config"
	"github.com/LarryRage/blockbiller/pkg/currency"
	"github.com/LarryRage/blockbiller/pkg/event"
	"github.com/LarryRage/blockbiller/pkg/logger"
	"github.com/LarryRage/blockbiller/pkg/pg"
	"github.com/LarryRage/blockbiller/pkg/redis"
	"github.com/LarryRage/blockbiller/pkg/sender"
	"github.com/LarryRage/blockbiller/pkg/subscriber"
)

// Module bundles the wired components of the billing ledger.
type Module struct {
	Currencies currency.Registry
	Catalog    catalog.Catalog
	Engine     engine.Engine
	Senders    *sender.Registry
	Events     event.Broadcaster

	// Health checks the module's backing services. Nil when the module has
	// no external backends, as with in-memory stores.
	Health func(context.Context) error

	log *slog.Logger
}

// Deps are the component dependencies for New. Stores and the transferrer
// are required; Broadcaster and Logger are optional.
type Deps struct {
	Currencies  currency.Store
	Plans       catalog.Store
	Subscribers subscriber.Store
	Transfer    engine.Transferrer
	Auth        authz.Authorizer
	Fees        engine.FeeProvider
	Broadcaster event.Broadcaster
	Logger      *slog.Logger
}

// New wires a billing module from explicit dependencies. The custody and
// deployer principals come from cfg.
func New(cfg Config, deps Deps) *Module {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	events := deps.Broadcaster
	if events == nil {
		events = event.NewMemoryBroadcaster(cfg.EventBuffer)
	}

	senders := sender.NewRegistry(deps.Auth, authz.Principal(cfg.Deployer))

	currencies := currency.NewRegistry(deps.Currencies, deps.Auth,
		currency.WithBroadcaster(events))

	cat := catalog.New(deps.Plans, currencies,
		catalog.WithBroadcaster(events))

	eng := engine.NewEngine(
		deps.Plans, deps.Subscribers,
		deps.Transfer, deps.Fees,
		senders, deps.Auth,
		authz.Principal(cfg.Custody),
		engine.WithBroadcaster(events),
		engine.WithLogger(log),
	)

	return &Module{
		Currencies: currencies,
		Catalog:    cat,
		Engine:     eng,
		Senders:    senders,
		Events:     events,
		log:        log,
	}
}

// NewFromEnv wires the module from environment configuration: postgres-backed
// stores with migrations applied, role grants from the configured source, a
// static fee provider, and optionally a Redis event broadcaster. The value
// transfer backend stays a caller-supplied collaborator. The returned cleanup
// closes the acquired connections.
func NewFromEnv(ctx context.Context, transfer engine.Transferrer) (*Module, func(), error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, nil, err
	}

	log := logger.New(logger.WithService("blockbiller"))

	var pgCfg pg.Config
	if err := config.Load(&pgCfg); err != nil {
		return nil, nil, err
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return nil, nil, err
	}
	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		pool.Close()
		return nil, nil, err
	}

	cleanup := func() { pool.Close() }

	auth, err := buildAuthorizer(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	fees, err := engine.NewStaticFeeProvider(authz.Principal(cfg.FeeRecipient), cfg.FeeBps)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	health := pg.Healthcheck(pool)

	var events event.Broadcaster
	if cfg.EventChannel != "" {
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			cleanup()
			return nil, nil, err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		events = event.NewRedisBroadcaster(client, cfg.EventChannel)
		cleanup = func() {
			_ = client.Close()
			pool.Close()
		}

		pgHealth, redisHealth := health, redis.Healthcheck(client)
		health = func(ctx context.Context) error {
			if err := pgHealth(ctx); err != nil {
				return err
			}
			return redisHealth(ctx)
		}
	}

	mod := New(cfg, Deps{
		Currencies:  currency.NewPostgresStore(pool),
		Plans:       catalog.NewPostgresStore(pool),
		Subscribers: subscriber.NewPostgresStore(pool),
		Transfer:    transfer,
		Auth:        auth,
		Fees:        fees,
		Broadcaster: events,
		Logger:      log,
	})
	mod.Health = health

	return mod, cleanup, nil
}

func buildAuthorizer(ctx context.Context, cfg Config) (authz.Authorizer, error) {
	var source authz.GrantSource
	if cfg.GrantsFile != "" {
		source = authz.NewFileGrantSource(cfg.GrantsFile)
	} else {
		source = authz.NewInMemGrantSource(map[authz.Principal][]authz.Role{
			authz.Principal(cfg.Deployer): {authz.RoleDefaultAdmin, authz.RoleAdmin},
		})
	}

	auth, err := authz.NewOracle(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to build authorizer: %w", err)
	}
	return auth, nil
}
