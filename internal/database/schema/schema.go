package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Characters
-- character id is 1:1 with the owning account id and supplied externally.
CREATE TABLE IF NOT EXISTS characters (
    character_id      BIGINT PRIMARY KEY,
    level             INTEGER NOT NULL DEFAULT 1 CHECK (level >= 1),
    exp               BIGINT NOT NULL DEFAULT 0 CHECK (exp >= 0),
    money_balance     BIGINT NOT NULL DEFAULT 0 CHECK (money_balance >= 0),
    bank_balance      BIGINT NOT NULL DEFAULT 0 CHECK (bank_balance >= 0),
    secondary_balance BIGINT NOT NULL DEFAULT 0 CHECK (secondary_balance >= 0),
    equipped_weapon1_kind VARCHAR(20),
    equipped_weapon1_id   INTEGER,
    equipped_weapon2_kind VARCHAR(20),
    equipped_weapon2_id   INTEGER,
    equipped_armor_kind   VARCHAR(20),
    equipped_armor_id     INTEGER,
    equipped_house_kind   VARCHAR(20),
    equipped_house_id     INTEGER,
    max_hp     INTEGER NOT NULL DEFAULT 100,
    hp         INTEGER NOT NULL DEFAULT 100,
    max_energy INTEGER NOT NULL DEFAULT 50,
    energy     INTEGER NOT NULL DEFAULT 50,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Inventory entries
-- One row per (character, item); rows at quantity zero are deleted.
CREATE TABLE IF NOT EXISTS inventory_entries (
    character_id BIGINT NOT NULL REFERENCES characters(character_id) ON DELETE CASCADE,
    item_kind    VARCHAR(20) NOT NULL,
    item_id      INTEGER NOT NULL,
    quantity     INTEGER NOT NULL CHECK (quantity >= 1),
    equipped     BOOLEAN NOT NULL DEFAULT FALSE,
    slot         VARCHAR(10),
    PRIMARY KEY (character_id, item_kind, item_id)
);

CREATE INDEX IF NOT EXISTS idx_inventory_character ON inventory_entries (character_id);

-- Task definitions (static reference data)
CREATE TABLE IF NOT EXISTS task_definitions (
    task_id       SERIAL PRIMARY KEY,
    metric        VARCHAR(50) NOT NULL,
    task_name     VARCHAR(100) NOT NULL,
    goal          BIGINT NOT NULL CHECK (goal > 0),
    reward_money  BIGINT NOT NULL DEFAULT 0,
    reward_exp    BIGINT NOT NULL DEFAULT 0,
    reward_points BIGINT NOT NULL DEFAULT 0,
    active        BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE INDEX IF NOT EXISTS idx_task_definitions_metric ON task_definitions (metric) WHERE active;

-- Per-character task progress
CREATE TABLE IF NOT EXISTS user_task_progress (
    character_id     BIGINT NOT NULL REFERENCES characters(character_id) ON DELETE CASCADE,
    task_id          INTEGER NOT NULL REFERENCES task_definitions(task_id) ON DELETE CASCADE,
    progress         BIGINT NOT NULL DEFAULT 0 CHECK (progress >= 0),
    is_completed     BOOLEAN NOT NULL DEFAULT FALSE,
    reward_collected BOOLEAN NOT NULL DEFAULT FALSE,
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    completed_at     TIMESTAMPTZ,
    PRIMARY KEY (character_id, task_id)
);

-- Contracts (time-bounded bounties)
CREATE TABLE IF NOT EXISTS contracts (
    contract_id  UUID PRIMARY KEY,
    poster_id    BIGINT NOT NULL REFERENCES characters(character_id),
    target_id    BIGINT NOT NULL REFERENCES characters(character_id),
    status       VARCHAR(10) NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'fulfilled', 'expired')),
    reward       BIGINT NOT NULL CHECK (reward > 0),
    fulfilled_by BIGINT REFERENCES characters(character_id),
    expires_at   TIMESTAMPTZ NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_contracts_due ON contracts (expires_at) WHERE status = 'open';

-- Seed task definitions
INSERT INTO task_definitions (metric, task_name, goal, reward_money, reward_exp, reward_points, active) VALUES
('crimes_committed',    'First Steps',      10,   500,  100, 0,  TRUE),
('crimes_committed',    'Career Criminal',  1000, 25000, 5000, 50, TRUE),
('items_bought',        'Shopping Spree',   25,   1000, 200, 0,  TRUE),
('money_balance',       'First Grand',      1000, 0,    250, 5,  TRUE),
('bank_balance',        'Saver',            10000, 0,   500, 10, TRUE),
('level',               'Reach Level 10',   10,   5000, 0,   25, TRUE),
('contracts_fulfilled', 'Hitman',           5,    10000, 2500, 20, TRUE)
ON CONFLICT DO NOTHING;
`
