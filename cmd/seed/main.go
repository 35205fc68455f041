// Command seed fills a demo account with random ledger data.
package main

import (
	"context"
	"errors"
	"flag"
	_ "time/tzdata"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/valeriaulyamaeva/controle-mei/internal/config"
	"github.com/valeriaulyamaeva/controle-mei/internal/database"
	"github.com/valeriaulyamaeva/controle-mei/internal/logging"
	"github.com/valeriaulyamaeva/controle-mei/internal/mei"
	"github.com/valeriaulyamaeva/controle-mei/migrations"
	"github.com/valeriaulyamaeva/controle-mei/utils"
)

func main() {
	email := flag.String("email", "demo@controle-mei.local", "demo account email")
	password := flag.String("password", "demo1234", "demo account password")
	count := flag.Int("transactions", 120, "number of transactions")
	seed := flag.Int64("seed", 0, "faker seed, 0 for random")
	flag.Parse()

	cfg := config.MustLoad()
	logging.New(cfg.LogLevel, cfg.LogFormat)
	logger := logging.For("seed")
	ctx := context.Background()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()
	if err := database.ApplyMigrations(ctx, pool, migrations.FS); err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}

	f := gofakeit.New(*seed)
	users := database.NewUsers(pool)
	user, err := users.Register(ctx, *email, *password, f.Name())
	if errors.Is(err, database.ErrDuplicate) {
		user, err = users.FindByEmail(ctx, *email)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("demo user")
	}

	now := cfg.Now()
	txRepo := database.NewTransactions(pool)
	for _, tx := range utils.GenerateTransactions(f, user.ID, now, cfg.HistoryMonths, *count) {
		if err := txRepo.Create(ctx, &tx); err != nil {
			logger.Fatal().Err(err).Msg("insert transaction")
		}
	}

	debtRepo := database.NewRecurringDebts(pool)
	for _, d := range utils.GenerateRecurringDebts(f, user.ID, 4) {
		if err := debtRepo.Create(ctx, &d); err != nil {
			logger.Fatal().Err(err).Msg("insert recurring debt")
		}
	}

	dasRepo := database.NewDasPayments(pool)
	policy := mei.NewPaymentPolicy(cfg.DasDefaultAmount)
	skipped := 0
	for _, cmd := range utils.GenerateDasHistory(f, policy, user.ID, now, cfg.DasHistoryLimit-1) {
		if _, err := dasRepo.Apply(ctx, cmd); errors.Is(err, database.ErrDuplicate) {
			skipped++
		} else if err != nil {
			logger.Fatal().Err(err).Msg("insert das payment")
		}
	}

	logger.Info().
		Str(logging.USER, user.ID).
		Str("email", user.Email).
		Int("transactions", *count).
		Int("das_skipped", skipped).
		Msg("demo data ready")
}
