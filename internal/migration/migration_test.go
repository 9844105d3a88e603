package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatements_Order(t *testing.T) {
	steps := NewRunner().Statements()
	require.Len(t, steps, 5)

	var names []string
	for _, s := range steps {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"labelers table", "text_samples table", "labels table", "simulation_runs table", "indexes",
	}, names, "labels references labelers and text_samples, so it must come after them")
}

func TestStatements_Idempotent(t *testing.T) {
	for _, s := range NewRunner().Statements() {
		for _, stmt := range strings.Split(s.SQL, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			assert.Contains(t, stmt, "IF NOT EXISTS", s.Name)
		}
	}
}

func TestRunnerImplementsMigrator(t *testing.T) {
	var m Migrator = NewRunner()
	assert.Equal(t, "1.0.0", m.Version())
}
