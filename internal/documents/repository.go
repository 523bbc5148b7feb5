package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pagelab/pagelab/internal/storage"
)

const documentColumns = `id, name, filename, size_bytes, page_count,
	title, author, subject, keywords, creation_date, modification_date,
	storage_key, created_at, updated_at`

// System defines the stored-document operations. Implementations handle
// blob storage and database persistence.
type System interface {
	List(ctx context.Context, filters Filters) ([]Document, error)
	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Content(ctx context.Context, id uuid.UUID) ([]byte, *Document, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repo struct {
	db      *sql.DB
	storage storage.System
	logger  *slog.Logger
}

// New creates a document repository with database and blob storage integration.
func New(db *sql.DB, storage storage.System, logger *slog.Logger) System {
	return &repo{
		db:      db,
		storage: storage,
		logger:  logger.With("system", "documents"),
	}
}

func (r *repo) List(ctx context.Context, filters Filters) ([]Document, error) {
	q := fmt.Sprintf(`SELECT %s FROM documents`, documentColumns)
	args := []any{}

	if filters.Name != nil {
		q += ` WHERE name ILIKE '%' || $1 || '%'`
		args = append(args, *filters.Name)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	q := fmt.Sprintf(`SELECT %s FROM documents WHERE id = $1`, documentColumns)

	doc, err := scanDocument(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}

	return &doc, nil
}

func (r *repo) Content(ctx context.Context, id uuid.UUID) ([]byte, *Document, error) {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := r.storage.Retrieve(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("retrieve content: %w", err)
	}

	return data, doc, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Document, error) {
	id := uuid.New()
	storageKey := buildStorageKey(id, cmd.Filename)

	if err := r.storage.Store(ctx, storageKey, cmd.Data); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	q := fmt.Sprintf(`INSERT INTO documents
		(id, name, filename, size_bytes, page_count, title, author, subject,
		 keywords, creation_date, modification_date, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s`, documentColumns)

	a := cmd.Attributes
	doc, err := scanDocument(r.db.QueryRowContext(ctx, q,
		id, cmd.Name, cmd.Filename, a.SizeBytes, a.PageCount,
		a.Title, a.Author, a.Subject, a.Keywords,
		a.CreationDate, a.ModificationDate, storageKey,
	))
	if err != nil {
		if delErr := r.storage.Delete(ctx, storageKey); delErr != nil {
			r.logger.Error("cleanup failed after db error", "storage_key", storageKey, "error", delErr)
		}
		if isDuplicateError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert document: %w", err)
	}

	r.logger.Info("document created", "id", doc.ID, "name", doc.Name, "storage_key", storageKey)
	return &doc, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := r.Find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if err := r.storage.Delete(ctx, doc.StorageKey); err != nil {
		r.logger.Error("storage cleanup failed", "storage_key", doc.StorageKey, "error", err)
	}

	r.logger.Info("document deleted", "id", id)
	return nil
}

// scanner abstracts sql.Row and sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.Name,
		&d.Filename,
		&d.Attributes.SizeBytes,
		&d.Attributes.PageCount,
		&d.Attributes.Title,
		&d.Attributes.Author,
		&d.Attributes.Subject,
		&d.Attributes.Keywords,
		&d.Attributes.CreationDate,
		&d.Attributes.ModificationDate,
		&d.StorageKey,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

func isDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
