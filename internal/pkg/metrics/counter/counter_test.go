package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIncrementSQL_BatchesSortedById(t *testing.T) {
	sql, args := buildIncrementSQL("projects", "view_count", map[string]string{
		"7": "3",
		"2": "10",
		"5": "1",
	})

	assert.Equal(t,
		"UPDATE projects SET view_count = view_count + CASE id  WHEN ? THEN ? WHEN ? THEN ? WHEN ? THEN ? END WHERE id IN (?,?,?)",
		sql)
	require.Len(t, args, 9)
	assert.Equal(t, []interface{}{
		uint64(2), int64(10),
		uint64(5), int64(1),
		uint64(7), int64(3),
		uint64(2), uint64(5), uint64(7),
	}, args)
}

func TestBuildIncrementSQL_SingleEntry(t *testing.T) {
	sql, args := buildIncrementSQL("projects", "view_count", map[string]string{"42": "1"})

	assert.Equal(t,
		"UPDATE projects SET view_count = view_count + CASE id  WHEN ? THEN ? END WHERE id IN (?)",
		sql)
	assert.Equal(t, []interface{}{uint64(42), int64(1), uint64(42)}, args)
}

func TestBuildIncrementSQL_EmptyHashIsNoop(t *testing.T) {
	sql, args := buildIncrementSQL("projects", "view_count", nil)
	assert.Empty(t, sql)
	assert.Nil(t, args)

	sql, args = buildIncrementSQL("projects", "view_count", map[string]string{})
	assert.Empty(t, sql)
	assert.Nil(t, args)
}

func TestBuildIncrementSQL_SkipsBrokenEntries(t *testing.T) {
	sql, args := buildIncrementSQL("projects", "view_count", map[string]string{
		"not-an-id": "5", // field must be a numeric project id
		"3":         "x", // value must be a numeric increment
		"4":         "0", // zero increments have nothing to apply
		"9":         "2",
	})

	assert.Equal(t,
		"UPDATE projects SET view_count = view_count + CASE id  WHEN ? THEN ? END WHERE id IN (?)",
		sql)
	assert.Equal(t, []interface{}{uint64(9), int64(2), uint64(9)}, args)
}

func TestBuildIncrementSQL_AllEntriesBrokenIsNoop(t *testing.T) {
	sql, args := buildIncrementSQL("projects", "view_count", map[string]string{
		"a": "1",
		"1": "b",
	})
	assert.Empty(t, sql)
	assert.Nil(t, args)
}
