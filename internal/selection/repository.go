package selection

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/staykit/staykit-core/internal/template"
)

// Repository defines the interface for configuration persistence.
// This abstraction allows different implementations (SQLite, mock, etc.)
// and enables unit testing without database dependencies.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Configuration, error)
	List(ctx context.Context) ([]Configuration, error)
	ListByPropertyType(ctx context.Context, propertyType template.PropertyType) ([]Configuration, error)
	Create(ctx context.Context, cfg *Configuration) error
	Update(ctx context.Context, cfg *Configuration) error
	Delete(ctx context.Context, id string) error
}

// configColumns is the SELECT column list for configuration queries.
const configColumns = `id, name, property_type, rooms, region, budget,
			priorities, items, template_id, created_at, updated_at`

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetByID retrieves a configuration by its unique identifier.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Configuration, error) {
	query := `SELECT ` + configColumns + ` FROM configurations WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	cfg, err := scanConfigurationRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfigurationNotFound
		}
		return nil, fmt.Errorf("querying configuration by id: %w", err)
	}
	return cfg, nil
}

// List retrieves all configurations ordered by name.
func (r *SQLiteRepository) List(ctx context.Context) ([]Configuration, error) {
	query := `SELECT ` + configColumns + ` FROM configurations ORDER BY name, id`
	return r.queryConfigurations(ctx, query)
}

// ListByPropertyType retrieves all configurations for a property type.
func (r *SQLiteRepository) ListByPropertyType(ctx context.Context, propertyType template.PropertyType) ([]Configuration, error) {
	query := `SELECT ` + configColumns + ` FROM configurations WHERE property_type = ? ORDER BY name, id`
	return r.queryConfigurations(ctx, query, string(propertyType))
}

// Create inserts a new configuration.
func (r *SQLiteRepository) Create(ctx context.Context, cfg *Configuration) error {
	prioritiesJSON, itemsJSON, err := marshalLists(cfg)
	if err != nil {
		return err
	}

	// Timestamps are stored as RFC3339, so truncate to seconds up front:
	// the value kept in memory must equal the value read back.
	now := time.Now().UTC().Truncate(time.Second)
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	} else {
		cfg.CreatedAt = cfg.CreatedAt.UTC().Truncate(time.Second)
	}
	cfg.UpdatedAt = now

	query := `
		INSERT INTO configurations (
			id, name, property_type, rooms, region, budget,
			priorities, items, template_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		cfg.ID,
		cfg.Name,
		string(cfg.PropertyType),
		cfg.Rooms,
		nullableString(cfg.Region),
		nullableFloat(cfg.Budget),
		prioritiesJSON,
		itemsJSON,
		nullableStringPtr(cfg.TemplateID),
		cfg.CreatedAt.Format(time.RFC3339),
		cfg.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrConfigurationExists
		}
		return fmt.Errorf("inserting configuration: %w", err)
	}
	return nil
}

// Update modifies an existing configuration.
func (r *SQLiteRepository) Update(ctx context.Context, cfg *Configuration) error {
	prioritiesJSON, itemsJSON, err := marshalLists(cfg)
	if err != nil {
		return err
	}

	cfg.CreatedAt = cfg.CreatedAt.UTC().Truncate(time.Second)
	cfg.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	query := `
		UPDATE configurations SET
			name = ?, property_type = ?, rooms = ?, region = ?, budget = ?,
			priorities = ?, items = ?, template_id = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		cfg.Name,
		string(cfg.PropertyType),
		cfg.Rooms,
		nullableString(cfg.Region),
		nullableFloat(cfg.Budget),
		prioritiesJSON,
		itemsJSON,
		nullableStringPtr(cfg.TemplateID),
		cfg.UpdatedAt.Format(time.RFC3339),
		cfg.ID,
	)
	if err != nil {
		return fmt.Errorf("updating configuration: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrConfigurationNotFound
	}
	return nil
}

// Delete removes a configuration by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM configurations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting configuration: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrConfigurationNotFound
	}
	return nil
}

// queryConfigurations executes a query and returns a slice of configurations.
func (r *SQLiteRepository) queryConfigurations(ctx context.Context, query string, args ...any) ([]Configuration, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying configurations: %w", err)
	}
	defer rows.Close()

	var configs []Configuration
	for rows.Next() {
		cfg, scanErr := scanConfigurationRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scanning configuration: %w", scanErr)
		}
		configs = append(configs, *cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating configurations: %w", err)
	}
	return configs, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanConfigurationRow(scanner rowScanner) (*Configuration, error) {
	var c Configuration
	var region, templateID sql.NullString
	var budget sql.NullFloat64
	var prioritiesJSON, itemsJSON string
	var createdAt, updatedAt string
	var propertyType string

	err := scanner.Scan(
		&c.ID,
		&c.Name,
		&propertyType,
		&c.Rooms,
		&region,
		&budget,
		&prioritiesJSON,
		&itemsJSON,
		&templateID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.PropertyType = template.PropertyType(propertyType)
	if region.Valid {
		c.Region = region.String
	}
	if budget.Valid {
		b := budget.Float64
		c.Budget = &b
	}
	if templateID.Valid {
		c.TemplateID = &templateID.String
	}

	if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
		c.CreatedAt = t
	}
	if t, parseErr := time.Parse(time.RFC3339, updatedAt); parseErr == nil {
		c.UpdatedAt = t
	}

	if prioritiesJSON != "" && prioritiesJSON != "[]" {
		if jsonErr := json.Unmarshal([]byte(prioritiesJSON), &c.Priorities); jsonErr != nil {
			return nil, fmt.Errorf("unmarshalling priorities: %w", jsonErr)
		}
	}
	if itemsJSON != "" && itemsJSON != "[]" {
		if jsonErr := json.Unmarshal([]byte(itemsJSON), &c.Items); jsonErr != nil {
			return nil, fmt.Errorf("unmarshalling items: %w", jsonErr)
		}
	}
	if c.Items == nil {
		c.Items = []Item{}
	}

	return &c, nil
}

func marshalLists(cfg *Configuration) (prioritiesJSON, itemsJSON string, err error) {
	priorities := cfg.Priorities
	if priorities == nil {
		priorities = []string{}
	}
	pData, err := json.Marshal(priorities)
	if err != nil {
		return "", "", fmt.Errorf("marshalling priorities: %w", err)
	}

	items := cfg.Items
	if items == nil {
		items = []Item{}
	}
	iData, err := json.Marshal(items)
	if err != nil {
		return "", "", fmt.Errorf("marshalling items: %w", err)
	}

	return string(pData), string(iData), nil
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullableStringPtr(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullableFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "unique constraint")
}
