// Package testdb provides helpers for integration tests that run against a real
// PostgreSQL database. Tests are skipped unless LEXIS_TEST_DB_URL or
// DATABASE_URL is set.
//
// Typical use:
//
//	db := testdb.Open(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//		items := postgres.NewPostgresItemStore(tx, nil)
//		// ...
//	})
//
// Every WithTx call rolls back, so tests can share one migrated database.
package testdb
