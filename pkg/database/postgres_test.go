package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{
		Host:     "db.internal",
		Port:     "5433",
		User:     "shipdrop",
		Password: "secret",
		DBName:   "shipdrop",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=shipdrop password=secret dbname=shipdrop sslmode=require",
		cfg.DSN(),
	)
}
