package rules

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hazyhaar/formfill/dbopen"
	"github.com/hazyhaar/formfill/idgen"
)

// Store persists the profile and global rule tiers in SQLite.
type Store struct {
	DB  *sql.DB
	ids idgen.Generator
}

// OpenStore opens (or creates) the rule database at path and applies the
// schema.
func OpenStore(path string, opts ...dbopen.Option) (*Store, error) {
	allOpts := append([]dbopen.Option{
		dbopen.WithMkdirAll(),
		dbopen.WithSchema(Schema),
	}, opts...)

	db, err := dbopen.Open(path, allOpts...)
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

// NewStore wraps an existing database handle. The schema must already be
// applied.
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db, ids: idgen.Default}
}

// Close closes the database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Insert appends a rule to the end of a tier. A missing rule ID is
// generated.
func (s *Store) Insert(ctx context.Context, tier Tier, r *Rule) error {
	if !tier.Valid() {
		return fmt.Errorf("rules: invalid tier %q", tier)
	}
	if r.ID == "" {
		r.ID = s.ids()
	}
	match, _ := json.Marshal(r.Match)
	list, _ := json.Marshal(r.List)
	now := time.Now().UnixMilli()

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO custom_fields
			(id, tier, name, match, type, template, min, max, min_date, max_date, list,
			 position, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,
			(SELECT COALESCE(MAX(position),0)+1 FROM custom_fields WHERE tier = ?),
			?,?)`,
		r.ID, string(tier), r.Name, string(match), string(r.Type), r.Template,
		nullInt(r.Min), nullInt(r.Max), r.MinDate, r.MaxDate, string(list),
		string(tier), now, now,
	)
	if err != nil {
		return fmt.Errorf("rules: insert: %w", err)
	}
	return nil
}

// List returns a tier's rules in author order.
func (s *Store) List(ctx context.Context, tier Tier) ([]Rule, error) {
	if !tier.Valid() {
		return nil, fmt.Errorf("rules: invalid tier %q", tier)
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, name, match, type, template, min, max, min_date, max_date, list
		FROM custom_fields WHERE tier = ?
		ORDER BY position ASC, created_at ASC`, string(tier))
	if err != nil {
		return nil, fmt.Errorf("rules: list: %w", err)
	}
	defer rows.Close()

	var out []Rule
	for rows.Next() {
		var r Rule
		var match, list, typ string
		var min, max sql.NullInt64
		if err := rows.Scan(&r.ID, &r.Name, &match, &typ, &r.Template,
			&min, &max, &r.MinDate, &r.MaxDate, &list); err != nil {
			return nil, fmt.Errorf("rules: scan: %w", err)
		}
		r.Type = Type(typ)
		json.Unmarshal([]byte(match), &r.Match)
		json.Unmarshal([]byte(list), &r.List)
		if min.Valid {
			v := int(min.Int64)
			r.Min = &v
		}
		if max.Valid {
			v := int(max.Int64)
			r.Max = &v
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LoadTiers returns both tiers for building a Resolver.
func (s *Store) LoadTiers(ctx context.Context) (profile, global []Rule, err error) {
	if profile, err = s.List(ctx, TierProfile); err != nil {
		return nil, nil, err
	}
	if global, err = s.List(ctx, TierGlobal); err != nil {
		return nil, nil, err
	}
	return profile, global, nil
}

// Delete removes a rule by ID. Deleting an unknown ID is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM custom_fields WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("rules: delete: %w", err)
	}
	return nil
}

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
