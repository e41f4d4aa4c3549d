// Command seed is the one-time batch job that fills an empty todos table
// with synthetic records. It is deliberately separate from the server: the
// service considers seeding an external concern and never seeds itself.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/mkotlyarov/todo-items-service/internal/config"
	"github.com/mkotlyarov/todo-items-service/internal/logger"
	"github.com/mkotlyarov/todo-items-service/internal/repository"
	pgrepo "github.com/mkotlyarov/todo-items-service/internal/repository/postgres"
)

func main() {
	_ = godotenv.Load()

	count := flag.Int("count", 100000, "rows to insert when the table is empty")
	batch := flag.Int("batch", 1000, "rows per copy batch")
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx := context.Background()
	repo, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer repo.Close()
	pool := repo.Pool()

	existing, err := pgrepo.NewTodoRepository(pool).Count(ctx)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("count failed")
	}
	if existing > 0 {
		appLogger.Info().Int("existing", existing).Msg("table already seeded, skipping")
		return
	}

	appLogger.Info().Int("count", *count).Msg("seeding todos")
	for start := 1; start <= *count; start += *batch {
		end := start + *batch - 1
		if end > *count {
			end = *count
		}
		rows := make([][]any, 0, end-start+1)
		for i := start; i <= end; i++ {
			rows = append(rows, []any{fmt.Sprintf("Todo Item %d", i), rand.Intn(2) == 1})
		}
		if _, err := pool.CopyFrom(ctx, pgx.Identifier{"todos"}, []string{"name", "completed"}, pgx.CopyFromRows(rows)); err != nil {
			appLogger.Fatal().Err(err).Int("at", start).Msg("copy batch failed")
		}
		appLogger.Info().Int("seeded", end).Msg("progress")
	}
	appLogger.Info().Msg("seeding complete")
}
