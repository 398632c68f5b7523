package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/internship-board/internal/storage"
	"github.com/jonathan/internship-board/internal/types"
)

const internshipColumns = `id, title, company, description, location, duration, salary, requirements, skills,
	industry, is_remote, company_logo, posted_at, is_active`

func scanInternship(row rowScanner) (*types.Internship, error) {
	var i types.Internship
	err := row.Scan(&i.ID, &i.Title, &i.Company, &i.Description, &i.Location, &i.Duration, &i.Salary,
		&i.Requirements, &i.Skills, &i.Industry, &i.IsRemote, &i.CompanyLogo, &i.PostedAt, &i.IsActive)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// ListActiveInternships lists active internships in insertion order
func (db *DB) ListActiveInternships(ctx context.Context) ([]types.Internship, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+internshipColumns+` FROM internships WHERE is_active ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list internships: %w", err)
	}
	defer rows.Close()

	internships := make([]types.Internship, 0)
	for rows.Next() {
		i, err := scanInternship(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan internship: %w", err)
		}
		internships = append(internships, *i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list internships: %w", err)
	}
	return internships, nil
}

// GetInternship retrieves an internship by ID, active or not
func (db *DB) GetInternship(ctx context.Context, id string) (*types.Internship, error) {
	i, err := scanInternship(db.pool.QueryRow(ctx,
		`SELECT `+internshipColumns+` FROM internships WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get internship: %w", err)
	}
	return i, nil
}

// SearchInternships filters the active internships with the shared search rules.
func (db *DB) SearchInternships(ctx context.Context, filter storage.SearchFilter) ([]types.Internship, error) {
	active, err := db.ListActiveInternships(ctx)
	if err != nil {
		return nil, err
	}
	return storage.FilterInternships(active, filter), nil
}

// UpsertInternship inserts or replaces an internship by ID. A replaced internship keeps its position.
// An empty ID is assigned a new one.
func (db *DB) UpsertInternship(ctx context.Context, internship *types.Internship) error {
	if internship.ID == "" {
		internship.ID = uuid.NewString()
	}
	if internship.PostedAt.IsZero() {
		internship.PostedAt = time.Now()
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO internships (id, title, company, description, location, duration, salary, requirements,
		   skills, industry, is_remote, company_logo, posted_at, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (id) DO UPDATE SET
		   title = $2, company = $3, description = $4, location = $5, duration = $6, salary = $7,
		   requirements = $8, skills = $9, industry = $10, is_remote = $11, company_logo = $12,
		   posted_at = $13, is_active = $14`,
		internship.ID, internship.Title, internship.Company, internship.Description, internship.Location,
		internship.Duration, internship.Salary, internship.Requirements, internship.Skills, internship.Industry,
		internship.IsRemote, internship.CompanyLogo, internship.PostedAt, internship.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert internship %s: %w", internship.ID, err)
	}
	return nil
}
