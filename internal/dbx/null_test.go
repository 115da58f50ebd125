package dbx

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNullString(t *testing.T) {
	assert.Equal(t, sql.NullString{}, NullString(""))
	assert.Equal(t, sql.NullString{String: "p1", Valid: true}, NullString("p1"))
	assert.Equal(t, "", StringOf(sql.NullString{String: "junk"}))
	assert.Equal(t, "p1", StringOf(NullString("p1")))
}

func TestNullTime(t *testing.T) {
	assert.False(t, NullTime(time.Time{}).Valid)
	assert.True(t, TimeOf(sql.NullTime{}).IsZero())

	loc := time.FixedZone("X", 3*3600)
	ts := time.Date(2025, 1, 1, 12, 0, 0, 0, loc)
	got := TimeOf(NullTime(ts))
	assert.True(t, got.Equal(ts))
	assert.Equal(t, time.UTC, got.Location())
}

func TestNullUnix(t *testing.T) {
	assert.Equal(t, sql.NullInt64{}, NullUnix(time.Time{}))
	assert.True(t, UnixOf(sql.NullInt64{}).IsZero())

	ts := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	n := NullUnix(ts)
	assert.Equal(t, sql.NullInt64{Int64: ts.Unix(), Valid: true}, n)
	assert.Equal(t, ts, UnixOf(n))
}
