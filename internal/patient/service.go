package patient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/idalopban/ComVida/internal/repo"
)

// Service maps records to rows of the patients table.
type Service struct {
	repo repo.PatientRepository
}

func NewService(r repo.PatientRepository) *Service {
	return &Service{repo: r}
}

func (s *Service) List(ctx context.Context, ownerID int) ([]repo.PatientSummary, error) {
	return s.repo.ListPatients(ctx, ownerID)
}

func (s *Service) Load(ctx context.Context, ownerID int, slug string) (Record, error) {
	row, err := s.repo.GetPatient(ctx, ownerID, slug)
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(row.Data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode patient %s: %w", slug, err)
	}
	return rec, nil
}

// Store saves the record under the slug of its name and returns that slug.
func (s *Service) Store(ctx context.Context, ownerID int, rec Record) (string, error) {
	slug := Slug(rec.Name)
	if slug == "" {
		return "", ErrNameRequired
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode patient %s: %w", slug, err)
	}
	if _, err := s.repo.SavePatient(ctx, ownerID, slug, rec.Name, data); err != nil {
		return "", err
	}
	return slug, nil
}

func (s *Service) Delete(ctx context.Context, ownerID int, slug string) error {
	return s.repo.DeletePatient(ctx, ownerID, slug)
}
