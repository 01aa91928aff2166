package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Runs table: one row per lifecycle run over a space
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    space TEXT NOT NULL,
    read_only BOOLEAN NOT NULL DEFAULT 0,

    -- Per-phase tallies: pages classified, labels changed, changes
    -- suppressed by a lifecycle_ignore directive
    fresh_total INTEGER NOT NULL DEFAULT 0,
    fresh_changed INTEGER NOT NULL DEFAULT 0,
    fresh_suppressed INTEGER NOT NULL DEFAULT 0,
    stale_total INTEGER NOT NULL DEFAULT 0,
    stale_changed INTEGER NOT NULL DEFAULT 0,
    stale_suppressed INTEGER NOT NULL DEFAULT 0,
    rotten_total INTEGER NOT NULL DEFAULT 0,
    rotten_changed INTEGER NOT NULL DEFAULT 0,
    rotten_suppressed INTEGER NOT NULL DEFAULT 0,

    errors INTEGER NOT NULL DEFAULT 0,
    duration_ms INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_space ON runs(space);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
