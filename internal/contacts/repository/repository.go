package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"party_phonecountry/platform/apperr"
	"party_phonecountry/platform/db"
	"party_phonecountry/platform/phone"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	contactNotFoundMsg = "contact mechanism not found"
	contactExistsMsg   = "contact mechanism already exists"
)

const contactColumns = `id, party_id, party_name, type, value, value_compact, comment, active, created_at, updated_at`

const insertContactQuery = `
	INSERT INTO contact_mechanisms (
		id, party_id, party_name, type, value, value_compact, comment, active, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (id) DO NOTHING
	RETURNING ` + contactColumns

const selectContactQuery = `SELECT ` + contactColumns + ` FROM contact_mechanisms WHERE id = $1`

const updateContactQuery = `
	UPDATE contact_mechanisms
	SET party_name = $2, type = $3, value = $4, value_compact = $5, comment = $6, active = $7, updated_at = $8
	WHERE id = $1
	RETURNING ` + contactColumns

const listContactsBaseQuery = `
	FROM contact_mechanisms
	WHERE ($1::text IS NULL OR value ILIKE $1 OR value_compact ILIKE $1 OR value_compact ILIKE $2)
		AND ($3::uuid IS NULL OR party_id = $3)
		AND ($4::text IS NULL OR type = $4)
		AND ($5::boolean IS NULL OR active = $5)
`

const listPhoneRecordsQuery = `
	SELECT id, type, value, value_compact
	FROM contact_mechanisms
	WHERE type = ANY($1)
	ORDER BY id
`

const listPhoneBatchQuery = `
	SELECT id, type, value, value_compact
	FROM contact_mechanisms
	WHERE type = ANY($1) AND id > $2
	ORDER BY id
	LIMIT $3
`

const applyDisplayValuesQuery = `
	UPDATE contact_mechanisms AS c
	SET value = u.value, updated_at = now()
	FROM unnest($1::text[], $2::text[]) AS u(id, value)
	WHERE c.id = u.id::uuid
`

// Repository provides database operations for contact mechanisms.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new contact mechanisms repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ContactMechanism is one stored contact value of a party.
type ContactMechanism struct {
	ID           uuid.UUID
	PartyID      uuid.UUID
	PartyName    string
	Type         phone.Kind
	Value        string
	ValueCompact string
	Comment      *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ListParams struct {
	Search        string
	SearchCompact string
	PartyID       *uuid.UUID
	Type          string
	Active        *bool
	Page          int
	PageSize      int
}

type ListResult struct {
	Items      []ContactMechanism
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

func (r *Repository) querier(q db.DBTX) db.DBTX {
	if q != nil {
		return q
	}
	return r.pool
}

func (r *Repository) Create(ctx context.Context, q db.DBTX, m ContactMechanism) (ContactMechanism, error) {
	row := r.querier(q).QueryRow(ctx, insertContactQuery,
		m.ID,
		m.PartyID,
		m.PartyName,
		string(m.Type),
		m.Value,
		m.ValueCompact,
		m.Comment,
		m.Active,
		m.CreatedAt,
		m.UpdatedAt,
	)
	created, err := scanContact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ContactMechanism{}, apperr.Conflict(contactExistsMsg)
		}
		return ContactMechanism{}, fmt.Errorf("create contact mechanism: %w", err)
	}
	return created, nil
}

func (r *Repository) Update(ctx context.Context, q db.DBTX, m ContactMechanism) (ContactMechanism, error) {
	row := r.querier(q).QueryRow(ctx, updateContactQuery,
		m.ID,
		m.PartyName,
		string(m.Type),
		m.Value,
		m.ValueCompact,
		m.Comment,
		m.Active,
		m.UpdatedAt,
	)
	updated, err := scanContact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ContactMechanism{}, apperr.NotFound(contactNotFoundMsg)
		}
		return ContactMechanism{}, fmt.Errorf("update contact mechanism: %w", err)
	}
	return updated, nil
}

func (r *Repository) GetByID(ctx context.Context, q db.DBTX, id uuid.UUID) (ContactMechanism, error) {
	return r.get(ctx, q, selectContactQuery, id)
}

// GetByIDForUpdate reads the row and locks it until q commits.
func (r *Repository) GetByIDForUpdate(ctx context.Context, q db.DBTX, id uuid.UUID) (ContactMechanism, error) {
	return r.get(ctx, q, selectContactQuery+` FOR UPDATE`, id)
}

func (r *Repository) get(ctx context.Context, q db.DBTX, query string, id uuid.UUID) (ContactMechanism, error) {
	m, err := scanContact(r.querier(q).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ContactMechanism{}, apperr.NotFound(contactNotFoundMsg)
		}
		return ContactMechanism{}, fmt.Errorf("get contact mechanism: %w", err)
	}
	return m, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_mechanisms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact mechanism: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(contactNotFoundMsg)
	}
	return nil
}

func (r *Repository) List(ctx context.Context, params ListParams) (ListResult, error) {
	args := []interface{}{
		optionalSearch(params.Search),
		optionalSearch(params.SearchCompact),
		params.PartyID,
		optionalString(params.Type),
		params.Active,
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+listContactsBaseQuery, args...).Scan(&total); err != nil {
		return ListResult{}, fmt.Errorf("count contact mechanisms: %w", err)
	}

	page, pageSize := normalizePaging(params.Page, params.PageSize)
	offset := (page - 1) * pageSize

	selectQuery := `SELECT ` + contactColumns + listContactsBaseQuery + `
		ORDER BY party_name ASC, created_at ASC, id ASC
		LIMIT $6 OFFSET $7
	`
	args = append(args, pageSize, offset)

	rows, err := r.pool.Query(ctx, selectQuery, args...)
	if err != nil {
		return ListResult{}, fmt.Errorf("list contact mechanisms: %w", err)
	}
	defer rows.Close()

	items := make([]ContactMechanism, 0)
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return ListResult{}, fmt.Errorf("scan contact mechanism: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return ListResult{}, fmt.Errorf("iterate contact mechanisms: %w", err)
	}

	return ListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

func (r *Repository) ListPhoneRecords(ctx context.Context, q db.DBTX) ([]phone.Record, error) {
	rows, err := r.querier(q).Query(ctx, listPhoneRecordsQuery, phone.PhoneKindStrings())
	if err != nil {
		return nil, fmt.Errorf("list phone records: %w", err)
	}
	return collectRecords(rows)
}

func (r *Repository) ListPhoneBatch(ctx context.Context, q db.DBTX, after uuid.UUID, limit int) ([]phone.Record, error) {
	rows, err := r.querier(q).Query(ctx, listPhoneBatchQuery, phone.PhoneKindStrings(), after, limit)
	if err != nil {
		return nil, fmt.Errorf("list phone batch: %w", err)
	}
	return collectRecords(rows)
}

func (r *Repository) ApplyDisplayValues(ctx context.Context, q db.DBTX, updates []phone.Update) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	ids := make([]string, len(updates))
	values := make([]string, len(updates))
	for i, u := range updates {
		ids[i] = u.ID.String()
		values[i] = u.Value
	}

	tag, err := r.querier(q).Exec(ctx, applyDisplayValuesQuery, ids, values)
	if err != nil {
		return 0, fmt.Errorf("apply display values: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *Repository) UpdateValues(ctx context.Context, q db.DBTX, id uuid.UUID, value, valueCompact string) error {
	_, err := r.querier(q).Exec(ctx,
		`UPDATE contact_mechanisms SET value = $2, value_compact = $3, updated_at = now() WHERE id = $1`,
		id, value, valueCompact,
	)
	if err != nil {
		return fmt.Errorf("update contact values: %w", err)
	}
	return nil
}

func scanContact(row pgx.Row) (ContactMechanism, error) {
	var (
		m    ContactMechanism
		kind string
	)
	if err := row.Scan(
		&m.ID,
		&m.PartyID,
		&m.PartyName,
		&kind,
		&m.Value,
		&m.ValueCompact,
		&m.Comment,
		&m.Active,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return ContactMechanism{}, err
	}
	m.Type = phone.Kind(kind)
	return m, nil
}

func collectRecords(rows pgx.Rows) ([]phone.Record, error) {
	defer rows.Close()

	records := make([]phone.Record, 0)
	for rows.Next() {
		var (
			rec  phone.Record
			kind string
		)
		if err := rows.Scan(&rec.ID, &kind, &rec.Value, &rec.ValueCompact); err != nil {
			return nil, fmt.Errorf("scan phone record: %w", err)
		}
		rec.Kind = phone.Kind(kind)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate phone records: %w", err)
	}
	return records, nil
}

func optionalSearch(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	pattern := "%" + trimmed + "%"
	return &pattern
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func normalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
