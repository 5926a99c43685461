package sqlite

const schema = `
-- Daily metrics table: one row per calendar day
CREATE TABLE IF NOT EXISTS daily_metrics (
    date TEXT PRIMARY KEY,
    sleep_hours REAL,
    sleep_score INTEGER,
    sleep_quality TEXT,
    steps INTEGER,
    active_calories INTEGER,
    resting_calories INTEGER,
    resting_heart_rate INTEGER,
    avg_stress INTEGER,
    body_battery_high INTEGER,
    body_battery_low INTEGER,
    weight_kg REAL,
    sync_success INTEGER NOT NULL DEFAULT 0,
    synced_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_daily_metrics_weight ON daily_metrics(weight_kg);

-- Sync attempt log (append-only audit trail)
-- Rows are never updated or deleted; idempotency queries derive from them
CREATE TABLE IF NOT EXISTS sync_attempts (
    id TEXT PRIMARY KEY,
    timestamp DATETIME NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('success', 'partial', 'error', 'report_sent')),
    error_message TEXT
);

CREATE INDEX IF NOT EXISTS idx_sync_attempts_status ON sync_attempts(status);
CREATE INDEX IF NOT EXISTS idx_sync_attempts_timestamp ON sync_attempts(timestamp);

-- User goals table
CREATE TABLE IF NOT EXISTS user_goals (
    metric TEXT PRIMARY KEY,
    target_value REAL NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Food entries table (nutrition ledger)
CREATE TABLE IF NOT EXISTS food_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL,
    name TEXT NOT NULL CHECK(length(name) <= 200),
    quantity REAL NOT NULL DEFAULT 1.0,
    unit TEXT NOT NULL DEFAULT 'un',
    calories REAL,
    protein_g REAL,
    fat_g REAL,
    carbs_g REAL,
    fiber_g REAL,
    source TEXT NOT NULL DEFAULT 'manual',
    barcode TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_food_entries_date ON food_entries(date);
`
