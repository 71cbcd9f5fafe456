package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomToken(t *testing.T) {
	a := GenerateRandomToken(12)
	b := GenerateRandomToken(12)
	assert.Len(t, a, 12)
	assert.Len(t, b, 12)
	assert.NotEqual(t, a, b)
	assert.Len(t, GenerateRandomToken(7), 7)
}

func TestParseEventTime(t *testing.T) {
	now := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC) // Monday

	t.Run("date and clock", func(t *testing.T) {
		got, err := ParseEventTime("2025-04-12", "14:30", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.April, 12, 14, 30, 0, 0, time.UTC), got)
	})

	t.Run("rfc3339", func(t *testing.T) {
		got, err := ParseEventTime("2025-04-12T10:00:00Z", "", now)
		require.NoError(t, err)
		assert.Equal(t, 10, got.Hour())
	})

	t.Run("date only", func(t *testing.T) {
		got, err := ParseEventTime("2025-04-12", "", now)
		require.NoError(t, err)
		assert.Equal(t, 12, got.Day())
		assert.Equal(t, 0, got.Hour())
	})

	t.Run("natural language", func(t *testing.T) {
		got, err := ParseEventTime("tomorrow", "5pm", now)
		require.NoError(t, err)
		assert.Equal(t, 4, got.Day())
		assert.Equal(t, 17, got.Hour())
	})

	t.Run("bad clock", func(t *testing.T) {
		_, err := ParseEventTime("2025-04-12", "noonish", now)
		assert.ErrorIs(t, err, ErrUnparseableDate)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseEventTime("", "", now)
		assert.ErrorIs(t, err, ErrUnparseableDate)
	})
}

func TestPaginate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		query       string
		page, limit int
	}{
		{"page=0&limit=500", 1, MaxPageSize},
		{"page=3&limit=abc", 3, DefaultPageSize},
		{"", 1, DefaultPageSize},
		{"page=2&limit=25", 2, 25},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/x?"+tc.query, nil)

			page, limit := Paginate(c)
			assert.Equal(t, tc.page, page)
			assert.Equal(t, tc.limit, limit)
		})
	}
}

func TestParseIDAndEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "42"}, {Key: "bad", Value: "0"}}

	id, ok := ParseID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
	_, ok = ParseID(c, "bad")
	assert.False(t, ok)

	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}
