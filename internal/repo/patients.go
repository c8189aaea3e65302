package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// PatientRow is a stored patient. Data holds the full record as JSON; its
// shape belongs to the patient package.
type PatientRow struct {
	ID        int             `json:"id"`
	OwnerID   int             `json:"-"`
	Slug      string          `json:"slug"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type PatientSummary struct {
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PatientRepository interface {
	ListPatients(ctx context.Context, ownerID int) ([]PatientSummary, error)
	GetPatient(ctx context.Context, ownerID int, slug string) (PatientRow, error)
	SavePatient(ctx context.Context, ownerID int, slug, name string, data []byte) (int, error)
	DeletePatient(ctx context.Context, ownerID int, slug string) error
}

type PostgresPatientRepository struct {
	db *sql.DB
}

func NewPostgresPatientDB(db *sql.DB) *PostgresPatientRepository {
	return &PostgresPatientRepository{db: db}
}

func (r *PostgresPatientRepository) ListPatients(ctx context.Context, ownerID int) ([]PatientSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT slug, name, updated_at FROM patients WHERE owner_id=$1 ORDER BY name", ownerID)
	if err != nil {
		return nil, mapErr("list patients", err)
	}
	defer rows.Close()

	out := []PatientSummary{}
	for rows.Next() {
		var p PatientSummary
		if err := rows.Scan(&p.Slug, &p.Name, &p.UpdatedAt); err != nil {
			return nil, mapErr("scan patient", err)
		}
		out = append(out, p)
	}
	return out, mapErr("list patients", rows.Err())
}

func (r *PostgresPatientRepository) GetPatient(ctx context.Context, ownerID int, slug string) (PatientRow, error) {
	p := PatientRow{OwnerID: ownerID}
	var data []byte
	query := "SELECT id, slug, name, data, updated_at FROM patients WHERE owner_id=$1 AND slug=$2"
	err := r.db.QueryRowContext(ctx, query, ownerID, slug).Scan(&p.ID, &p.Slug, &p.Name, &data, &p.UpdatedAt)
	if err != nil {
		return PatientRow{}, mapErr("get patient", err)
	}
	p.Data = data
	return p, nil
}

// SavePatient inserts or replaces the record stored under (owner, slug).
func (r *PostgresPatientRepository) SavePatient(ctx context.Context, ownerID int, slug, name string, data []byte) (int, error) {
	var id int
	query := `INSERT INTO patients (owner_id, slug, name, data, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (owner_id, slug) DO UPDATE
		SET name = EXCLUDED.name, data = EXCLUDED.data, updated_at = now()
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, ownerID, slug, name, data).Scan(&id)
	return id, mapErr("save patient", err)
}

func (r *PostgresPatientRepository) DeletePatient(ctx context.Context, ownerID int, slug string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM patients WHERE owner_id=$1 AND slug=$2", ownerID, slug)
	if err != nil {
		return mapErr("delete patient", err)
	}
	return affectedOrNotFound("delete patient", res)
}
