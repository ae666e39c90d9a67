package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrRenderNotFound is returned by SelectRenderByID when no row matches.
var ErrRenderNotFound = errors.New("render not found")

// InsertRender records a render in the processing state. Times are stored in UTC.
func InsertRender(db *sql.DB, r *Render) error {
	_, err := db.Exec(InsertRenderSQL,
		r.ID, r.Source, r.Transcript, r.Destination, r.Workspace,
		r.Segments, r.Duration, r.Mode, r.StartedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert render: %w", err)
	}
	r.Status = StatusProcessing
	return nil
}

// MarkRenderComplete sets a render's status to complete and records the output size.
func MarkRenderComplete(db *sql.DB, id string, finishedAt time.Time, filesize int64) error {
	res, err := db.Exec(MarkRenderCompleteSQL, finishedAt.UTC(), filesize, id)
	if err != nil {
		return fmt.Errorf("mark render complete: %w", err)
	}
	return expectRow(res, id)
}

// MarkRenderError sets a render's status to error and stores the failure text.
func MarkRenderError(db *sql.DB, id string, errorAt time.Time, msg string) error {
	res, err := db.Exec(MarkRenderErrorSQL, errorAt.UTC(), msg, id)
	if err != nil {
		return fmt.Errorf("mark render error: %w", err)
	}
	return expectRow(res, id)
}

// SelectRenderByID returns the render with the given id.
func SelectRenderByID(db *sql.DB, id string) (*Render, error) {
	r, err := scanRender(db.QueryRow(SelectRenderByIDSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRenderNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("select render: %w", err)
	}
	return r, nil
}

// SelectRecentRenders returns up to limit renders, newest first.
func SelectRecentRenders(db *sql.DB, limit int) ([]Render, error) {
	rows, err := db.Query(SelectRecentRendersSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select recent renders: %w", err)
	}
	defer rows.Close()

	var renders []Render
	for rows.Next() {
		r, err := scanRender(rows)
		if err != nil {
			return nil, fmt.Errorf("scan render: %w", err)
		}
		renders = append(renders, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate renders: %w", err)
	}
	return renders, nil
}

// DeleteRendersBefore removes renders started before cutoff and returns how
// many rows were deleted.
func DeleteRendersBefore(db *sql.DB, cutoff time.Time) (int64, error) {
	res, err := db.Exec(DeleteRendersBeforeSQL, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete renders: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRender(row rowScanner) (*Render, error) {
	var r Render
	var finished, errored sql.NullTime
	err := row.Scan(&r.ID, &r.Source, &r.Transcript, &r.Destination, &r.Workspace,
		&r.Segments, &r.Duration, &r.Mode, &r.Status, &r.StartedAt,
		&finished, &errored, &r.Filesize, &r.Log)
	if err != nil {
		return nil, err
	}
	if finished.Valid {
		t := finished.Time
		r.FinishedAt = &t
	}
	if errored.Valid {
		t := errored.Time
		r.ErrorAt = &t
	}
	return &r, nil
}

func expectRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRenderNotFound, id)
	}
	return nil
}
