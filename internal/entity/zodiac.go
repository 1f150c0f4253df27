package entity

import (
	"fmt"
	"time"
)

// ZodiacSign is the custom type to enforce enum-like behavior
type ZodiacSign string

func (zs ZodiacSign) String() string {
	return string(zs)
}

const (
	Aries       ZodiacSign = "aries"
	Taurus      ZodiacSign = "taurus"
	Gemini      ZodiacSign = "gemini"
	Cancer      ZodiacSign = "cancer"
	Leo         ZodiacSign = "leo"
	Virgo       ZodiacSign = "virgo"
	Libra       ZodiacSign = "libra"
	Scorpio     ZodiacSign = "scorpio"
	Sagittarius ZodiacSign = "sagittarius"
	Capricorn   ZodiacSign = "capricorn"
	Aquarius    ZodiacSign = "aquarius"
	Pisces      ZodiacSign = "pisces"
)

// BirthDateLayout is the wire format for birth dates.
const BirthDateLayout = "2006-01-02"

// signStarts lists the first calendar day of each sign's range. A date
// on a boundary resolves to the sign that starts that day.
var signStarts = []struct {
	month int
	day   int
	sign  ZodiacSign
}{
	{1, 20, Aquarius},
	{2, 19, Pisces},
	{3, 21, Aries},
	{4, 20, Taurus},
	{5, 21, Gemini},
	{6, 21, Cancer},
	{7, 23, Leo},
	{8, 23, Virgo},
	{9, 23, Libra},
	{10, 23, Scorpio},
	{11, 22, Sagittarius},
	{12, 22, Capricorn},
}

// CalculateZodiacSign derives the sun sign from a YYYY-MM-DD birth
// date. The ranges are fixed month/day boundaries, not year-dependent.
// The sign is computed once at the birthdate step and stored
// permanently with the session.
func CalculateZodiacSign(birthDate string) (ZodiacSign, error) {
	t, err := time.Parse(BirthDateLayout, birthDate)
	if err != nil {
		return "", fmt.Errorf("invalid birth date %q: %w", birthDate, err)
	}

	month, day := int(t.Month()), t.Day()

	// Capricorn spans the year boundary, so it is the sign of every
	// date before the Aquarius start on Jan 20.
	sign := Capricorn
	for _, s := range signStarts {
		if month > s.month || (month == s.month && day >= s.day) {
			sign = s.sign
		}
	}
	return sign, nil
}
