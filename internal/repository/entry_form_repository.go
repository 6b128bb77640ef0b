package repository

import (
	"context"
	"database/sql"

	"github.com/go-sql-driver/mysql"

	"github.com/kritsada/arrival-card-service/internal/model"
)

// mysqlDupEntry is the MySQL error number for a UNIQUE index violation.
const mysqlDupEntry = 1062

// EntryFormRepo provides insert and exact-match lookup operations for
// entry-form linkage records.  The card_no column carries a UNIQUE index;
// inserts racing on the same candidate number lose with ErrDuplicateCard.
type EntryFormRepo struct {
	db *sql.DB
}

// NewEntryFormRepo returns a new EntryFormRepo bound to the given database.
func NewEntryFormRepo(db *sql.DB) *EntryFormRepo { return &EntryFormRepo{db: db} }

// Create inserts the linkage row and populates the generated ID and
// database defaults on the provided record.  A UNIQUE violation on
// card_no is mapped to ErrDuplicateCard so the caller can tell a lost
// allocation race from any other storage failure.
func (r *EntryFormRepo) Create(ctx context.Context, e *model.EntryForm) error {
	const q = `INSERT INTO entry_form (profile_id, travel_id, unique_id, card_no, pdf_path, pdf_url)
			   VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, e.ProfileID, e.TravelID, e.UniqueID, e.CardNo, e.PDFPath, e.PDFURL)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == mysqlDupEntry {
			return ErrDuplicateCard
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return r.scanWhere(ctx, "id = ?", id, e)
}

// GetByCardNumber looks up an entry form by its public arrival-card
// number.  ErrNotFound means the number is unused, which is the expected
// result during allocation.
func (r *EntryFormRepo) GetByCardNumber(ctx context.Context, cardNo string) (*model.EntryForm, error) {
	var e model.EntryForm
	if err := r.scanWhere(ctx, "card_no = ?", cardNo, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByUniqueID looks up an entry form by its document identifier.
func (r *EntryFormRepo) GetByUniqueID(ctx context.Context, uniqueID string) (*model.EntryForm, error) {
	var e model.EntryForm
	if err := r.scanWhere(ctx, "unique_id = ?", uniqueID, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EntryFormRepo) scanWhere(ctx context.Context, where string, arg interface{}, e *model.EntryForm) error {
	q := `SELECT id, profile_id, travel_id, unique_id, card_no, pdf_path, pdf_url, created_at
		  FROM entry_form WHERE ` + where
	err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&e.ID, &e.ProfileID, &e.TravelID, &e.UniqueID, &e.CardNo, &e.PDFPath, &e.PDFURL, &e.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}
