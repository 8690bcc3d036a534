package docstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGCollectionGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select body from documents").
		WithArgs("animes", "missing").
		WillReturnError(sql.ErrNoRows)

	col := NewPGStore(db).Collection("animes")
	if _, err := col.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGCollectionGetDecodesBody(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select body from documents").
		WithArgs("animes", "id-1").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(`{"title":"Akira"}`)))

	col := NewPGStore(db).Collection("animes")
	doc, err := col.Get(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc["title"] != "Akira" || doc["id"] != "id-1" {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestPGCollectionInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("insert into documents").
		WithArgs("animes", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	col := NewPGStore(db).Collection("animes")
	id, err := col.Insert(context.Background(), Document{"title": "Akira"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGCollectionInsertRejectsEmpty(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	col := NewPGStore(db).Collection("animes")
	if _, err := col.Insert(context.Background(), Document{}); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestPGCollectionUpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("update documents set body").
		WithArgs("animes", "missing", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	col := NewPGStore(db).Collection("animes")
	if err := col.Update(context.Background(), "missing", Document{"x": 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGCollectionDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("delete from documents").
		WithArgs("animes", "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	col := NewPGStore(db).Collection("animes")
	if err := col.Delete(context.Background(), "id-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
