package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/wanderlist/internal/place"
)

// PostgresRepository stores places in a local Postgres mirror. The
// schema is a single "places" table with sources and temple types as
// text arrays and the location as a jsonb column.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository wraps an open database handle.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// OpenPostgres connects using PG* environment conventions and verifies
// the connection.
func OpenPostgres(host, port, user, password, dbname string) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return db, nil
}

// EnsureSchema creates the places table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS places (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			category     TEXT,
			location     JSONB,
			url          TEXT,
			sources      TEXT[],
			temple_types TEXT[],
			city         TEXT,
			country      TEXT,
			status       TEXT,
			notes        TEXT,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create places table: %w", err)
	}
	return nil
}

// ListAll returns the full snapshot ordered by creation time.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]place.Place, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(category, ''), location, COALESCE(url, ''),
		       sources, temple_types, COALESCE(city, ''), COALESCE(country, ''),
		       COALESCE(status, ''), COALESCE(notes, '')
		FROM places
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer rows.Close()

	var places []place.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, p)
	}

	return places, rows.Err()
}

// Create inserts a new place and returns it with its assigned ID.
func (r *PostgresRepository) Create(ctx context.Context, p place.Place) (place.Place, error) {
	if p.Name == "" {
		return place.Place{}, fmt.Errorf("place name is required")
	}

	p.ID = uuid.NewString()

	locationJSON, err := marshalLocation(p.Location)
	if err != nil {
		return place.Place{}, err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO places (id, name, category, location, url, sources, temple_types,
		                    city, country, status, notes)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7,
		        NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''))
	`,
		p.ID, p.Name, string(p.Category), locationJSON, p.URL,
		pq.Array(p.Sources), pq.Array(p.TempleTypes),
		p.City, p.Country, string(p.Status), p.Notes,
	)
	if err != nil {
		return place.Place{}, fmt.Errorf("failed to insert place: %w", err)
	}

	return p, nil
}

// Update applies a partial field set and returns the updated record.
func (r *PostgresRepository) Update(ctx context.Context, id string, updates PlaceUpdates) (place.Place, error) {
	locationJSON, err := marshalLocation(updates.Location)
	if err != nil {
		return place.Place{}, err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE places SET
			name         = COALESCE(NULLIF($2, ''), name),
			category     = COALESCE(NULLIF($3, ''), category),
			location     = COALESCE($4, location),
			url          = COALESCE(NULLIF($5, ''), url),
			sources      = COALESCE($6, sources),
			temple_types = COALESCE($7, temple_types),
			city         = COALESCE(NULLIF($8, ''), city),
			country      = COALESCE(NULLIF($9, ''), country),
			status       = COALESCE(NULLIF($10, ''), status),
			updated_at   = now()
		WHERE id = $1
	`,
		id, updates.Name, string(updates.Category), locationJSON, updates.URL,
		sourcesArray(updates.Sources), sourcesArray(updates.TempleTypes),
		updates.City, updates.Country, string(updates.Status),
	)
	if err != nil {
		return place.Place{}, fmt.Errorf("failed to update place: %w", err)
	}

	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return place.Place{}, fmt.Errorf("place %s not found", id)
	}

	return r.getByID(ctx, id)
}

func (r *PostgresRepository) getByID(ctx context.Context, id string) (place.Place, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(category, ''), location, COALESCE(url, ''),
		       sources, temple_types, COALESCE(city, ''), COALESCE(country, ''),
		       COALESCE(status, ''), COALESCE(notes, '')
		FROM places WHERE id = $1
	`, id)
	return scanPlace(row)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlace(row rowScanner) (place.Place, error) {
	var p place.Place
	var category, status string
	var locationJSON []byte
	var sources, templeTypes pq.StringArray

	err := row.Scan(&p.ID, &p.Name, &category, &locationJSON, &p.URL,
		&sources, &templeTypes, &p.City, &p.Country, &status, &p.Notes)
	if err != nil {
		return place.Place{}, fmt.Errorf("failed to scan place: %w", err)
	}

	p.Category = place.Category(category)
	p.Status = place.Status(status)
	p.Sources = []string(sources)
	p.TempleTypes = []string(templeTypes)

	if len(locationJSON) > 0 {
		var loc place.Location
		if err := json.Unmarshal(locationJSON, &loc); err != nil {
			return place.Place{}, fmt.Errorf("failed to decode location for %s: %w", p.ID, err)
		}
		p.Location = &loc
	}

	return p, nil
}

func marshalLocation(loc *place.Location) ([]byte, error) {
	if loc == nil {
		return nil, nil
	}
	data, err := json.Marshal(loc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode location: %w", err)
	}
	return data, nil
}

// sourcesArray maps nil to SQL NULL so COALESCE keeps the stored value.
func sourcesArray(values []string) interface{} {
	if values == nil {
		return nil
	}
	return pq.Array(values)
}
