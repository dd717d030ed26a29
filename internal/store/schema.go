package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    name      TEXT PRIMARY KEY,
    payload   TEXT NOT NULL,
    saved_at  TEXT NOT NULL
);
`
