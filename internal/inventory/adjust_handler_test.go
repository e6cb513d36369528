package inventory

import (
	"testing"

	"shopstock-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustErrorSurfacesAvailableQuantity(t *testing.T) {
	err := adjustError(&stock.InsufficientStockError{ProductName: "Blue Shirt", Available: 2})

	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
	assert.Contains(t, fe.Message, "Blue Shirt")
	assert.Contains(t, fe.Message, "available: 2")
}

func TestAdjustErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{stock.ErrInvalidQuantity, fiber.StatusBadRequest},
		{stock.ErrInvalidDirection, fiber.StatusBadRequest},
		{stock.ErrProductNotFound, fiber.StatusNotFound},
	}
	for _, c := range cases {
		var fe *fiber.Error
		require.ErrorAs(t, adjustError(c.err), &fe)
		assert.Equal(t, c.code, fe.Code)
	}
}
