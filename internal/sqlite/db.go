package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer, and a pooled :memory: DSN would give
	// every connection its own empty database. One connection serves both.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema if it doesn't exist yet.
func (db *DB) RunMigrations() error {
	migration := `
-- Rooms table. The occupied-bed counter is denormalized for read efficiency;
-- the CHECK backs up the engine-level occupancy invariant.
CREATE TABLE IF NOT EXISTS rooms (
    id TEXT PRIMARY KEY,
    property_id TEXT NOT NULL,
    name TEXT NOT NULL,
    room_type TEXT NOT NULL CHECK(room_type IN ('SINGLE', 'DOUBLE', 'TRIPLE', 'QUAD')),
    floor INTEGER,
    total_beds INTEGER NOT NULL CHECK(total_beds > 0),
    occupied_beds INTEGER NOT NULL DEFAULT 0 CHECK(occupied_beds >= 0 AND occupied_beds <= total_beds),
    monthly_rent INTEGER NOT NULL DEFAULT 0,
    is_active INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_rooms_property ON rooms(property_id);

-- Tenants table
CREATE TABLE IF NOT EXISTS tenants (
    id TEXT PRIMARY KEY,
    property_id TEXT NOT NULL,
    name TEXT NOT NULL,
    contact_number TEXT NOT NULL,
    email TEXT,
    room_id TEXT NOT NULL,
    bed_number INTEGER NOT NULL,
    join_date DATE NOT NULL,
    leave_date DATE,
    rent_due_day INTEGER NOT NULL CHECK(rent_due_day BETWEEN 1 AND 31),
    security_deposit INTEGER NOT NULL DEFAULT 0,
    monthly_rent INTEGER NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('ACTIVE', 'INACTIVE')),
    is_active INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (room_id) REFERENCES rooms(id)
);
CREATE INDEX IF NOT EXISTS idx_tenants_property_active ON tenants(property_id, is_active);
CREATE INDEX IF NOT EXISTS idx_tenants_room ON tenants(room_id);

-- Rent obligations. The unique index is the idempotency boundary for the
-- billing generator: at most one obligation per tenant per billing month.
CREATE TABLE IF NOT EXISTS rent_payments (
    id TEXT PRIMARY KEY,
    property_id TEXT NOT NULL,
    tenant_id TEXT NOT NULL,
    room_id TEXT NOT NULL,
    month TEXT NOT NULL,
    due_date DATE NOT NULL,
    paid_date DATE,
    rent_amount INTEGER NOT NULL,
    paid_amount INTEGER NOT NULL DEFAULT 0,
    late_fee INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL CHECK(status IN ('PENDING', 'OVERDUE', 'PAID')),
    payment_method TEXT CHECK(payment_method IN ('CASH', 'BANK_TRANSFER', 'UPI')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (tenant_id) REFERENCES tenants(id),
    UNIQUE (tenant_id, month)
);
CREATE INDEX IF NOT EXISTS idx_payments_property_status ON rent_payments(property_id, status);
CREATE INDEX IF NOT EXISTS idx_payments_tenant ON rent_payments(tenant_id);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
