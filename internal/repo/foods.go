package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/idalopban/ComVida/internal/nutrient"
)

// Food is one row of the composition table. Nutrients are per 100 g.
type Food struct {
	Code      string             `json:"code"`
	Name      string             `json:"name"`
	Nutrients nutrient.Nutrients `json:"nutrients"`
}

type FoodRepository interface {
	SearchFoods(ctx context.Context, query string, limit int) ([]Food, error)
	GetFood(ctx context.Context, code string) (Food, error)
	UpsertFoods(ctx context.Context, foods []Food) (int, error)
}

type PostgresFoodRepository struct {
	db *sql.DB
}

func NewPostgresFoodDB(db *sql.DB) *PostgresFoodRepository {
	return &PostgresFoodRepository{db: db}
}

// SearchFoods matches the query against code or name, case-insensitively.
func (r *PostgresFoodRepository) SearchFoods(ctx context.Context, query string, limit int) ([]Food, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"
	rows, err := r.db.QueryContext(ctx,
		"SELECT code, name, nutrients FROM foods WHERE code ILIKE $1 OR name ILIKE $1 ORDER BY name LIMIT $2",
		pattern, limit)
	if err != nil {
		return nil, mapErr("search foods", err)
	}
	defer rows.Close()

	foods := []Food{}
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, f)
	}
	return foods, mapErr("search foods", rows.Err())
}

func (r *PostgresFoodRepository) GetFood(ctx context.Context, code string) (Food, error) {
	row := r.db.QueryRowContext(ctx, "SELECT code, name, nutrients FROM foods WHERE code=$1", code)
	return scanFood(row)
}

// UpsertFoods writes all foods in a single transaction.
func (r *PostgresFoodRepository) UpsertFoods(ctx context.Context, foods []Food) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, mapErr("begin", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO foods (code, name, nutrients) VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, nutrients = EXCLUDED.nutrients`)
	if err != nil {
		return 0, mapErr("prepare upsert", err)
	}
	defer stmt.Close()

	for _, f := range foods {
		b, err := json.Marshal(f.Nutrients)
		if err != nil {
			return 0, fmt.Errorf("encode nutrients %s: %w", f.Code, err)
		}
		if _, err := stmt.ExecContext(ctx, f.Code, f.Name, b); err != nil {
			return 0, mapErr("upsert food "+f.Code, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, mapErr("commit", err)
	}
	return len(foods), nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanFood(s scanner) (Food, error) {
	var f Food
	var raw []byte
	if err := s.Scan(&f.Code, &f.Name, &raw); err != nil {
		return Food{}, mapErr("scan food", err)
	}
	if err := json.Unmarshal(raw, &f.Nutrients); err != nil {
		return Food{}, fmt.Errorf("decode nutrients %s: %w", f.Code, err)
	}
	return f, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
