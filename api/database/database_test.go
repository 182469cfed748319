package database

import (
	"testing"

	"PickEm/api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	dev := config.Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "pickem", DBPort: "5432"}
	assert.Equal(t, "host=db user=u password=p dbname=pickem port=5432 sslmode=disable TimeZone=UTC", PostgresDSN(dev))

	prod := config.Config{AppEnv: "production", DatabaseURL: "postgres://x@h/db"}
	assert.Equal(t, "postgres://x@h/db?sslmode=require", PostgresDSN(prod))

	prod.DatabaseURL = "postgres://x@h/db?application_name=pickem"
	assert.Equal(t, "postgres://x@h/db?application_name=pickem&sslmode=require", PostgresDSN(prod))

	prod.DatabaseURL = "postgres://x@h/db?sslmode=disable"
	assert.Equal(t, "postgres://x@h/db?sslmode=disable", PostgresDSN(prod))
}

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN(config.Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "pickem", DBPort: "5432"})

	assert.Contains(t, dsn, "u:p@tcp(db:3306)/pickem")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestDialectorUnknownDriver(t *testing.T) {
	_, err := Dialector(config.Config{DBDriver: "oracle"})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestOpenSQLite(t *testing.T) {
	db, err := Open(config.Config{DBDriver: "sqlite", DatabaseURL: ":memory:"})
	require.NoError(t, err)
	assert.NoError(t, db.Exec("SELECT 1").Error)
}
