package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Focus events - one row per accepted gesture trigger
		`CREATE TABLE IF NOT EXISTS focus_events (
			id TEXT PRIMARY KEY,
			item_id TEXT NOT NULL,
			item_title TEXT NOT NULL DEFAULT '',
			triggered_at DATETIME NOT NULL,
			released_at DATETIME
		)`,

		// Settings - application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
