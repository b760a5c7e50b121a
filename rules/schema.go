package rules

// Schema contains the DDL for the rule store.
const Schema = `
-- Custom field rules: authoring overrides mapping fingerprint patterns to
-- synthesis strategies. Position preserves author ordering within a tier;
-- earlier rules win.
CREATE TABLE IF NOT EXISTS custom_fields (
    id         TEXT PRIMARY KEY,
    tier       TEXT NOT NULL CHECK (tier IN ('profile','global')),
    name       TEXT NOT NULL DEFAULT '',
    match      TEXT NOT NULL DEFAULT '[]',
    type       TEXT NOT NULL,
    template   TEXT NOT NULL DEFAULT '',
    min        INTEGER,
    max        INTEGER,
    min_date   TEXT NOT NULL DEFAULT '',
    max_date   TEXT NOT NULL DEFAULT '',
    list       TEXT NOT NULL DEFAULT '[]',
    position   INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_custom_fields_tier ON custom_fields(tier, position);
`
