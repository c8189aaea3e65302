// Command foodload imports a food composition table (semicolon separated
// CSV) into the foods table.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/idalopban/ComVida/internal/auth"
	"github.com/idalopban/ComVida/internal/config"
	"github.com/idalopban/ComVida/internal/food"
	"github.com/idalopban/ComVida/internal/logger"
	"github.com/idalopban/ComVida/internal/repo"
	"go.uber.org/zap"
)

func main() {
	path := flag.String("file", "data/tabla_alimentos.csv", "food composition CSV")
	dryRun := flag.Bool("dry-run", false, "parse only, do not write to the database")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logger.NewLogger(cfg.Log.Level, "console", "comvida-foodload")
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal("open food table", zap.String("file", *path), zap.Error(err))
	}
	defer f.Close()

	foods, err := food.Parse(f)
	if err != nil {
		log.Fatal("parse food table", zap.String("file", *path), zap.Error(err))
	}
	log.Info("food table parsed", zap.String("file", *path), zap.Int("foods", len(foods)))
	if *dryRun {
		return
	}

	db, err := auth.InitDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()

	if err := repo.EnsureSchema(ctx, db); err != nil {
		log.Fatal("schema setup failed", zap.Error(err))
	}
	n, err := repo.NewPostgresFoodDB(db).UpsertFoods(ctx, foods)
	if err != nil {
		log.Fatal("load foods failed", zap.Error(err))
	}
	log.Info("foods loaded", zap.Int("rows", n))
}
