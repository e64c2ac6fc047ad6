package store

// ActionRun is a finished button command.
type ActionRun struct {
	ID              string
	ItemUUID        string
	ApplicationUUID string
	ButtonLabel     string
	Status          string
	Error           string
	StartedAt       int64 // unix millis
	FinishedAt      int64 // unix millis
}

// InsertActionRun stores a run. Re-inserting an ID updates its outcome.
func (db *DB) InsertActionRun(r ActionRun) error {
	_, err := db.Exec(`
		INSERT INTO action_runs (id, item_uuid, application_uuid, button_label, status, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			error = excluded.error,
			finished_at = excluded.finished_at`,
		r.ID, r.ItemUUID, r.ApplicationUUID, r.ButtonLabel, r.Status, r.Error, r.StartedAt, r.FinishedAt)
	return err
}

// ListActionRuns returns runs, most recently started first.
func (db *DB) ListActionRuns(limit int) ([]ActionRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT id, item_uuid, application_uuid, button_label, status, error, started_at, finished_at
		FROM action_runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []ActionRun
	for rows.Next() {
		var r ActionRun
		if err := rows.Scan(&r.ID, &r.ItemUUID, &r.ApplicationUUID, &r.ButtonLabel, &r.Status, &r.Error, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
