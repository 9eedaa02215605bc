// Package testdb opens migrated databases for tests.
//
// Tests run against a fresh SQLite file in t.TempDir() by default. When
// DAYPLAN_TEST_DATABASE_URL is set, Open connects to that PostgreSQL
// database instead; every test works inside its own random user partition,
// so the shared database needs no cleanup between tests.
//
//	func TestMyFeature(t *testing.T) {
//	    db, dialect := testdb.Open(t)
//	    days := sqlstore.NewSQLDayStore(db, dialect, nil)
//	    ...
//	}
package testdb
