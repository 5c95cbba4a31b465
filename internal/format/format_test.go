package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	assert.Equal(t, "$25", Price(25))
	assert.Equal(t, "$120", Price(120))
}

func TestDate(t *testing.T) {
	d := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Saturday, June 1, 2024", Date(d))
}

func TestSlot(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"9:00", "9:00 AM"},
		{"11:00", "11:00 AM"},
		{"12:00", "12:00 PM"},
		{"13:00", "1:00 PM"},
		{"18:00", "6:00 PM"},
		{"0:00", "12:00 AM"},
		{"garbage", "garbage"},
		{"25:00", "25:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slot(tt.key), tt.key)
	}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "30 minutes", Duration(30))
}
