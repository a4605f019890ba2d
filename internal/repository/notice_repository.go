package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/digital-notice-board/internal/model"
)

// NoticeRepo provides access to the `notices` table.
type NoticeRepo struct{ DB *sql.DB }

func NewNoticeRepo(db *sql.DB) *NoticeRepo { return &NoticeRepo{DB: db} }

// NoticeFilter holds the optional query filters for the public
// listing. Empty fields are ignored. Search matches the title
// case-insensitively; Category and Date are exact matches against the
// stored strings.
type NoticeFilter struct {
	Search   string
	Category string
	Date     string
}

const noticeColumns = "id,title,description,category,`date`,urgent,COALESCE(file,''),created_at,updated_at"

// Create inserts a notice and fills in its generated ID and
// timestamps.
func (r *NoticeRepo) Create(ctx context.Context, n *model.Notice) error {
	var file any
	if n.File != "" {
		file = n.File
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notices (title, description, category, `date`, urgent, file) VALUES (?,?,?,?,?,?)",
		n.Title, n.Description, n.Category, n.Date, n.Urgent, file)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	created, err := r.GetByID(ctx, n.ID)
	if err != nil {
		return err
	}
	*n = created
	return nil
}

// GetByID fetches a single notice.
func (r *NoticeRepo) GetByID(ctx context.Context, id uint64) (model.Notice, error) {
	var n model.Notice
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+noticeColumns+" FROM notices WHERE id=? LIMIT 1", id).
		Scan(&n.ID, &n.Title, &n.Description, &n.Category, &n.Date, &n.Urgent, &n.File, &n.CreatedAt, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Notice{}, ErrNoticeNotFound
	}
	return n, err
}

// List returns notices newest first, optionally narrowed by filter.
// The full unfiltered listing is what polling clients reconcile
// against; the filters serve direct searches.
func (r *NoticeRepo) List(ctx context.Context, f NoticeFilter) ([]model.Notice, error) {
	where := []string{}
	args := []any{}

	if f.Search != "" {
		where = append(where, "LOWER(title) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Search)+"%")
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.Date != "" {
		where = append(where, "`date` = ?")
		args = append(args, f.Date)
	}

	query := "SELECT " + noticeColumns + " FROM notices"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Notice{}
	for rows.Next() {
		var n model.Notice
		if err := rows.Scan(&n.ID, &n.Title, &n.Description, &n.Category, &n.Date, &n.Urgent, &n.File, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Update replaces the mutable fields of a notice and returns the
// updated record. ErrNoticeNotFound when the id does not exist.
func (r *NoticeRepo) Update(ctx context.Context, n model.Notice) (model.Notice, error) {
	if _, err := r.GetByID(ctx, n.ID); err != nil {
		return model.Notice{}, err
	}
	var file any
	if n.File != "" {
		file = n.File
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE notices SET title=?, description=?, category=?, `date`=?, urgent=?, file=? WHERE id=?",
		n.Title, n.Description, n.Category, n.Date, n.Urgent, file, n.ID)
	if err != nil {
		return model.Notice{}, err
	}
	return r.GetByID(ctx, n.ID)
}

// Delete removes a notice. ErrNoticeNotFound when nothing was deleted.
// Clients that already synthesized a notification for the notice keep
// it; the server does not push deletions.
func (r *NoticeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM notices WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoticeNotFound
	}
	return nil
}
