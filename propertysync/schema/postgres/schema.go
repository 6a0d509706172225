package postgres

// Schema holds the tables written by the property sync.
const Schema = `
CREATE TABLE IF NOT EXISTS property_groups (
    portal_id     BIGINT      NOT NULL,
    name          TEXT        NOT NULL,
    display_name  TEXT        NOT NULL,
    display_order INTEGER     NOT NULL,
    synced_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (portal_id, name)
);

CREATE TABLE IF NOT EXISTS properties (
    portal_id     BIGINT      NOT NULL,
    name          TEXT        NOT NULL,
    group_name    TEXT        NOT NULL,
    label         TEXT        NOT NULL,
    description   TEXT        NOT NULL,
    type          TEXT        NOT NULL,
    field_type    TEXT        NOT NULL,
    form_field    BOOLEAN     NOT NULL,
    display_order INTEGER     NOT NULL,
    options       JSONB       NOT NULL DEFAULT '[]'::jsonb,
    synced_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (portal_id, name)
);

CREATE TABLE IF NOT EXISTS sync_runs (
    id                   UUID        PRIMARY KEY,
    status               TEXT        NOT NULL,
    groups_succeeded     INTEGER     NOT NULL DEFAULT 0,
    groups_failed        INTEGER     NOT NULL DEFAULT 0,
    properties_succeeded INTEGER     NOT NULL DEFAULT 0,
    properties_failed    INTEGER     NOT NULL DEFAULT 0,
    started_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
    finished_at          TIMESTAMPTZ
);
`
