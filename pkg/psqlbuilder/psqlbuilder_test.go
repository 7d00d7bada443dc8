package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("appointments").
		Where(squirrel.Eq{"barber": "Alex"}).
		Where(squirrel.Eq{"status": "confirmed"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM appointments WHERE barber = $1 AND status = $2", query)
	assert.Equal(t, []interface{}{"Alex", "confirmed"}, args)
}

func TestInsert(t *testing.T) {
	query, _, err := Insert("away_days").Columns("barber", "day").Values("Moe", "2026-10-20").ToSql()

	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO away_days (barber,day) VALUES ($1,$2)", query)
}
