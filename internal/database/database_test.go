package database

import (
	"context"
	"testing"
	"testing/fstest"

	"feedgraph/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestConfigurePool(t *testing.T) {
	db := openSQLite(t)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}
	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestDSN(t *testing.T) {
	cfg := &config.Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "feed"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=feed sslmode=disable", DSN(cfg))
}

func TestEmbeddedMigrations(t *testing.T) {
	all := GetMigrations()
	require.NotEmpty(t, all)
	assert.Equal(t, 1, all[0].Version)
	assert.Equal(t, "init_schema", all[0].Name)
	assert.Contains(t, all[0].UpScript, "idx_likes_post_user")
	assert.Contains(t, all[0].UpScript, "idx_users_email")
	assert.Contains(t, all[0].DownScript, "DROP TABLE IF EXISTS likes")
	assert.Equal(t, "000001_init_schema", all[0].String())
	assert.NotNil(t, GetMigrationByVersion(1))
	assert.Nil(t, GetMigrationByVersion(999))
}

func TestLoadMigrations_SkipsMalformedNames(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/000002_second.up.sql":   {Data: []byte("SELECT 2")},
		"migrations/000002_second.down.sql": {Data: []byte("SELECT -2")},
		"migrations/000001_first.up.sql":    {Data: []byte("SELECT 1")},
		"migrations/000001_first.down.sql":  {Data: []byte("SELECT -1")},
		"migrations/bogus.up.sql":           {Data: []byte("SELECT 0")},
		"migrations/README.md":              {Data: []byte("docs")},
	}

	loaded, err := LoadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "first", loaded[0].Name)
	assert.Equal(t, "second", loaded[1].Name)
}

func TestLoadMigrations_RequiresDownScript(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/000001_first.up.sql": {Data: []byte("SELECT 1")},
	}
	_, err := LoadMigrations(fsys)
	assert.Error(t, err)
}

func TestRunMigrations_AppliesOnceAndRollsBack(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	registered := []Migration{
		{Version: 1, Name: "widgets", UpScript: "CREATE TABLE widgets (id INTEGER PRIMARY KEY)", DownScript: "DROP TABLE widgets"},
		{Version: 2, Name: "gadgets", UpScript: "CREATE TABLE gadgets (id INTEGER PRIMARY KEY)", DownScript: "DROP TABLE gadgets"},
	}

	require.NoError(t, runMigrations(ctx, db, registered))
	require.NoError(t, runMigrations(ctx, db, registered), "second run must be a no-op")

	applied, err := NewMigrationStore(db).GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, applied)
	assert.True(t, db.Migrator().HasTable("gadgets"))

	require.NoError(t, rollbackMigration(ctx, db, registered[1]))
	assert.False(t, db.Migrator().HasTable("gadgets"))

	applied, err = NewMigrationStore(db).GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, applied)

	err = rollbackMigration(ctx, db, registered[1])
	assert.ErrorContains(t, err, "has not been applied")
}

func TestRunMigrations_RejectsUnknownAppliedVersions(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, runMigrations(ctx, db, []Migration{
		{Version: 5, Name: "future", UpScript: "SELECT 1", DownScript: "SELECT 1"},
	}))

	err := runMigrations(ctx, db, []Migration{
		{Version: 1, Name: "first", UpScript: "SELECT 1", DownScript: "SELECT 1"},
	})
	assert.ErrorContains(t, err, "000005")
}

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		env     string
		runSQL  bool
		runAuto bool
		wantErr bool
	}{
		{"hybrid development", "", "development", true, true, false},
		{"hybrid production", "hybrid", "production", true, false, false},
		{"sql only", "sql", "development", true, false, false},
		{"auto development", "auto", "development", false, true, false},
		{"auto production refused", "auto", "prod", false, false, true},
		{"unknown", "yolo", "development", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runSQL, runAuto, err := schemaPolicy(&config.Config{DBSchemaMode: tt.mode, Env: tt.env})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.runSQL, runSQL)
			assert.Equal(t, tt.runAuto, runAuto)
		})
	}
}

func TestApplySchema_AutoMode(t *testing.T) {
	db := openSQLite(t)
	cfg := &config.Config{DBSchemaMode: SchemaModeAuto, Env: "development"}

	require.NoError(t, ApplySchema(context.Background(), db, cfg))
	for _, table := range []string{"users", "posts", "comments", "likes"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	status, err := GetSchemaStatus(context.Background(), db, cfg)
	require.NoError(t, err)
	assert.False(t, status.WillRunSQL)
	assert.True(t, status.WillRunAutoMigrate)
}

func TestGetSchemaStatus_ReportsPending(t *testing.T) {
	db := openSQLite(t)
	status, err := GetSchemaStatus(context.Background(), db, &config.Config{DBSchemaMode: SchemaModeSQL})
	require.NoError(t, err)
	assert.Empty(t, status.AppliedVersions)
	assert.Len(t, status.PendingMigrations, len(GetMigrations()))
}
