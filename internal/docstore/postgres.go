package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"animedb.org/internal/ids"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store on PostgreSQL. Every document is one row in the
// documents table, keyed by (collection, id), with the body held as JSONB.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Collection(name string) Collection {
	return &pgCollection{db: s.db, name: name}
}

type pgCollection struct {
	db   *sql.DB
	name string
}

func (c *pgCollection) List(ctx context.Context) ([]Document, error) {
	rows, err := c.db.QueryContext(ctx,
		`select id, body from documents where collection=$1 order by id`, c.name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}
		doc, err := decodeDocument(id, body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (c *pgCollection) Get(ctx context.Context, id string) (Document, error) {
	var body []byte
	err := c.db.QueryRowContext(ctx,
		`select body from documents where collection=$1 and id=$2`, c.name, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeDocument(id, body)
}

func (c *pgCollection) Insert(ctx context.Context, doc Document) (string, error) {
	body, err := encodeDocument(doc)
	if err != nil {
		return "", err
	}
	id := ids.New()
	if _, err := c.db.ExecContext(ctx,
		`insert into documents(collection, id, body) values($1,$2,$3)`,
		c.name, id, body); err != nil {
		return "", err
	}
	return id, nil
}

func (c *pgCollection) Update(ctx context.Context, id string, doc Document) error {
	body, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	res, err := c.db.ExecContext(ctx,
		`update documents set body = body || $3::jsonb, updated_at = now() where collection=$1 and id=$2`,
		c.name, id, body)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (c *pgCollection) Delete(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx,
		`delete from documents where collection=$1 and id=$2`, c.name, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func encodeDocument(doc Document) ([]byte, error) {
	if len(doc) == 0 {
		return nil, ErrInvalidDocument
	}
	delete(doc, "id")
	return json.Marshal(doc)
}

func decodeDocument(id string, body []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	doc["id"] = id
	return doc, nil
}
