package storage

const snapshotSchema = `
CREATE TABLE snapshot (
	key TEXT PRIMARY KEY,
	body BLOB NOT NULL,
	titles INTEGER NOT NULL DEFAULT 0,
	updated_at TIMESTAMP NOT NULL
);
`

// snapshotMigrations contains incremental schema changes
// Each migration is applied in order based on the current user_version
// snapshotMigrations[0] is empty because version 0 uses the base schema
var snapshotMigrations = []string{
	"",
}
