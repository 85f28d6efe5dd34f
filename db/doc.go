// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens SQL connections and creates the schema used by
store.SQLStore.

# Opening a Connection

Open registers both drivers (lib/pq as "postgres", modernc sqlite as
"sqlite"), pings the database and creates the schema:

	conn, err := db.Open(db.TypeSQLite, "file:polls.db")
	if err != nil {
		log.Fatal(err)
	}

SQLite connections are limited to one open connection.

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables.

# Tables

  - poll: the active poll; slot is fixed to 1 so the table never holds
    more than one row
  - poll_option: options of the active poll with their vote counters

# Relationships

	poll 1──* poll_option

Options are deleted explicitly when the poll is replaced or cleared, since
sqlite does not enforce foreign keys by default.
*/
package db
