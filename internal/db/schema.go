package db

// Catalog collections are stored as one JSON document per record, keyed by
// collection and position so a load returns them in seeded order.
const createRecordsTable = `
CREATE TABLE IF NOT EXISTS records (
    collection TEXT NOT NULL,
    position INTEGER NOT NULL,
    data TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (collection, position)
);
`

const insertRecord = `
INSERT OR REPLACE INTO records (collection, position, data)
VALUES (?, ?, ?)
`

const selectRecords = `
SELECT data FROM records
WHERE collection = ?
ORDER BY position ASC
`

const selectRecordCount = `
SELECT COUNT(*) FROM records
`

const deleteRecords = `
DELETE FROM records
`

// Schema for saved filter views
const createViewsTable = `
CREATE TABLE IF NOT EXISTS views (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    page TEXT NOT NULL,
    name TEXT NOT NULL,
    spec TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(page, name)
);

CREATE INDEX IF NOT EXISTS idx_views_page ON views(page);
`

const upsertView = `
INSERT INTO views (page, name, spec) VALUES (?, ?, ?)
ON CONFLICT(page, name) DO UPDATE SET spec = excluded.spec, updated_at = CURRENT_TIMESTAMP
`

const selectView = `
SELECT id, page, name, spec, updated_at FROM views
WHERE page = ? AND name = ?
`

const selectViews = `
SELECT id, page, name, spec, updated_at FROM views
WHERE page = ?
ORDER BY name ASC
`

const selectAllViews = `
SELECT id, page, name, spec, updated_at FROM views
ORDER BY page ASC, name ASC
`

const deleteView = `
DELETE FROM views WHERE page = ? AND name = ?
`

// Schema for console settings (one row per field, value is JSON)
const createSettingsTable = `
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const upsertSetting = `
INSERT INTO settings (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`

const selectSettings = `
SELECT key, value FROM settings
`

// Schema for the monitor activity history
const createActivityTable = `
CREATE TABLE IF NOT EXISTS activity (
    id TEXT PRIMARY KEY,
    seq INTEGER NOT NULL,
    hospital TEXT NOT NULL,
    node TEXT NOT NULL,
    action TEXT NOT NULL,
    batch TEXT NOT NULL,
    status TEXT NOT NULL,
    occurred_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activity_occurred ON activity(occurred_at);
CREATE INDEX IF NOT EXISTS idx_activity_hospital ON activity(hospital);
`

const insertActivity = `
INSERT OR IGNORE INTO activity (id, seq, hospital, node, action, batch, status, occurred_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

const selectRecentActivity = `
SELECT id, seq, hospital, node, action, batch, status, occurred_at FROM activity
ORDER BY occurred_at DESC, seq DESC
LIMIT ?
`

const selectActivityByHospital = `
SELECT hospital, COUNT(*) as events,
    SUM(CASE WHEN status = 'warning' THEN 1 ELSE 0 END) as warnings
FROM activity
GROUP BY hospital
ORDER BY events DESC, hospital
`

const deleteActivity = `
DELETE FROM activity
`
