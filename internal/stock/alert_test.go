package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateAlert_OutOfStockAlwaysFires(t *testing.T) {
	// Zero is urgent: it fires regardless of the one-shot flag.
	d := EvaluateAlert(0, false)
	assert.Equal(t, AlertOutOfStock, d.Event)
	assert.False(t, d.Flag)

	d = EvaluateAlert(0, true)
	assert.Equal(t, AlertOutOfStock, d.Event)
	assert.True(t, d.Flag, "flag is left untouched at zero")
}

func TestEvaluateAlert_LowStockFiresOncePerDip(t *testing.T) {
	// First dip below the threshold fires and arms the flag.
	d := EvaluateAlert(4, false)
	assert.Equal(t, AlertLowStock, d.Event)
	assert.True(t, d.Flag)

	// Further drops while armed stay silent.
	d = EvaluateAlert(3, true)
	assert.Empty(t, d.Event)
	assert.True(t, d.Flag)

	d = EvaluateAlert(1, true)
	assert.Empty(t, d.Event)
	assert.True(t, d.Flag)
}

func TestEvaluateAlert_ReplenishResetsSilently(t *testing.T) {
	// Reaching the threshold re-arms without emitting anything.
	d := EvaluateAlert(LowStockThreshold, true)
	assert.Empty(t, d.Event)
	assert.False(t, d.Flag)

	d = EvaluateAlert(8, true)
	assert.Empty(t, d.Event)
	assert.False(t, d.Flag)
}

func TestEvaluateAlert_QuietZones(t *testing.T) {
	// Healthy stock, clear flag: nothing happens.
	d := EvaluateAlert(10, false)
	assert.Empty(t, d.Event)
	assert.False(t, d.Flag)

	d = EvaluateAlert(LowStockThreshold, false)
	assert.Empty(t, d.Event)
	assert.False(t, d.Flag)
}

func TestEvaluateAlert_RestockAfterZeroCanRetrigger(t *testing.T) {
	// Hitting zero with a clear flag leaves it clear, so a small restock into
	// the low band fires a fresh low-stock alert.
	d := EvaluateAlert(0, false)
	assert.False(t, d.Flag)

	d = EvaluateAlert(1, d.Flag)
	assert.Equal(t, AlertLowStock, d.Event)
	assert.True(t, d.Flag)
}

func TestEvaluateAlert_AdjustScenario(t *testing.T) {
	// 6 -> remove 2 -> 4: alert fires, flag arms.
	d := EvaluateAlert(4, false)
	assert.Equal(t, AlertLowStock, d.Event)
	assert.True(t, d.Flag)

	// -> remove 1 -> 3: already armed, silent.
	d = EvaluateAlert(3, d.Flag)
	assert.Empty(t, d.Event)
	assert.True(t, d.Flag)

	// -> add 5 -> 8: silent reset.
	d = EvaluateAlert(8, d.Flag)
	assert.Empty(t, d.Event)
	assert.False(t, d.Flag)
}
