package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateZodiacSign(t *testing.T) {
	tests := []struct {
		date string
		want ZodiacSign
	}{
		// each boundary day and the day before it
		{"1990-01-19", Capricorn},
		{"1990-01-20", Aquarius},
		{"1990-02-18", Aquarius},
		{"1990-02-19", Pisces},
		{"1990-03-20", Pisces},
		{"1990-03-21", Aries},
		{"1990-04-19", Aries},
		{"1990-04-20", Taurus},
		{"1990-05-20", Taurus},
		{"1990-05-21", Gemini},
		{"1990-06-20", Gemini},
		{"1990-06-21", Cancer},
		{"1990-07-22", Cancer},
		{"1990-07-23", Leo},
		{"1990-08-22", Leo},
		{"1990-08-23", Virgo},
		{"1990-09-22", Virgo},
		{"1990-09-23", Libra},
		{"1990-10-22", Libra},
		{"1990-10-23", Scorpio},
		{"1990-11-21", Scorpio},
		{"1990-11-22", Sagittarius},
		{"1990-12-21", Sagittarius},
		{"1990-12-22", Capricorn},
		// capricorn wraps over the year boundary
		{"1990-12-31", Capricorn},
		{"1990-01-01", Capricorn},
	}

	for _, tt := range tests {
		sign, err := CalculateZodiacSign(tt.date)
		require.NoError(t, err, tt.date)
		assert.Equal(t, tt.want, sign, tt.date)
	}
}

func TestCalculateZodiacSign_InvalidDate(t *testing.T) {
	for _, date := range []string{"", "1990-13-01", "30-07-1990", "not-a-date"} {
		_, err := CalculateZodiacSign(date)
		assert.Error(t, err, date)
	}
}
