package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversionRate(t *testing.T) {
	fs := &FunnelSnapshot{}
	assert.Equal(t, float64(0), fs.ConversionRate())

	fs = &FunnelSnapshot{TotalStarted: 3, StepBirthdateCompleted: 1}
	assert.Equal(t, 33.3, fs.ConversionRate())

	fs = &FunnelSnapshot{TotalStarted: 2, StepBirthdateCompleted: 1}
	assert.Equal(t, 50.0, fs.ConversionRate())

	fs = &FunnelSnapshot{TotalStarted: 7, StepBirthdateCompleted: 7}
	assert.Equal(t, 100.0, fs.ConversionRate())
}
