package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"clickhouse://default:pw@db:9000/logbook?dial_timeout=10s&max_execution_time=60",
		DSN("db", "9000", "logbook", "default", "pw", false))
	assert.Equal(t,
		"clickhouse://u:@db:9440/default?dial_timeout=10s&max_execution_time=60&secure=true",
		DSN("db", "9440", "default", "u", "", true))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("LOGBOOK_TEST_KEY", "")
	assert.Equal(t, "fallback", getEnv("LOGBOOK_TEST_KEY", "fallback"))
	t.Setenv("LOGBOOK_TEST_KEY", "set")
	assert.Equal(t, "set", getEnv("LOGBOOK_TEST_KEY", "fallback"))
}
