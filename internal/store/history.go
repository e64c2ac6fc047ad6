package store

import (
	"database/sql"
	"time"
)

// PageVisit is a navigation recorded in page history.
type PageVisit struct {
	Path      string
	ItemUUID  string
	Title     string
	Visits    int
	VisitedAt int64 // unix millis
}

// RecordPageVisit upserts a visit, bumping the visit counter and timestamp.
func (db *DB) RecordPageVisit(v PageVisit) error {
	visitedAt := v.VisitedAt
	if visitedAt == 0 {
		visitedAt = time.Now().UnixMilli()
	}
	_, err := db.Exec(`
		INSERT INTO page_history (path, item_uuid, title, visits, visited_at)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(path) DO UPDATE SET
			item_uuid = CASE WHEN excluded.item_uuid != '' THEN excluded.item_uuid ELSE page_history.item_uuid END,
			title = CASE WHEN excluded.title != '' THEN excluded.title ELSE page_history.title END,
			visits = page_history.visits + 1,
			visited_at = MAX(page_history.visited_at, excluded.visited_at)`,
		v.Path, v.ItemUUID, v.Title, visitedAt)
	return err
}

// RecentPages returns page history, most recent first.
func (db *DB) RecentPages(limit int) ([]PageVisit, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT path, item_uuid, title, visits, visited_at
		FROM page_history
		ORDER BY visited_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var pages []PageVisit
	for rows.Next() {
		var p PageVisit
		if err := rows.Scan(&p.Path, &p.ItemUUID, &p.Title, &p.Visits, &p.VisitedAt); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// GetPage returns a single history entry, or nil if the path was never visited.
func (db *DB) GetPage(path string) (*PageVisit, error) {
	var p PageVisit
	err := db.QueryRow(`
		SELECT path, item_uuid, title, visits, visited_at
		FROM page_history WHERE path = ?`, path).
		Scan(&p.Path, &p.ItemUUID, &p.Title, &p.Visits, &p.VisitedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ClearPageHistory deletes all page history and returns the number of rows removed.
func (db *DB) ClearPageHistory() (int64, error) {
	res, err := db.Exec(`DELETE FROM page_history`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
