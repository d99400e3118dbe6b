package order_test

import (
	"testing"

	"stockway/internal/core/domain/model/inventory"
	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/order"
	"stockway/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLine(t *testing.T, itemID kernel.UUID, quantity int, price string) *order.Line {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), itemID, quantity, decimal.RequireFromString(price))
	require.NoError(t, err)
	return line
}

func mustOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), []*order.Line{
		mustLine(t, kernel.NewUUID(), 1, "10.00"),
	})
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func TestNewLine(t *testing.T) {
	t.Run("should compute line total", func(t *testing.T) {
		line := mustLine(t, kernel.NewUUID(), 3, "45.00")
		assert.True(t, decimal.RequireFromString("135.00").Equal(line.Total()))
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 0, decimal.NewFromInt(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject negative price", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 1, decimal.NewFromInt(-1))
		require.Error(t, err)
	})

	t.Run("should reject missing item id", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), kernel.UUID{}, 1, decimal.NewFromInt(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("total equals the sum of frozen line prices", func(t *testing.T) {
		rice, err := inventory.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Rice 5kg", "RICE-5", decimal.RequireFromString("250.00"), 10)
		require.NoError(t, err)
		oil, err := inventory.NewItem(kernel.NewUUID(), rice.WarehouseID(), "Oil 1L", "OIL-1", decimal.RequireFromString("45.00"), 10)
		require.NoError(t, err)

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), rice.WarehouseID(), []*order.Line{
			mustLine(t, rice.ID(), 2, rice.Price().String()),
			mustLine(t, oil.ID(), 3, oil.Price().String()),
		})
		require.NoError(t, err)

		assert.Equal(t, "635.00", o.TotalAmount().StringFixed(2))
		assert.Equal(t, order.Pending, o.Status())

		require.NoError(t, rice.ChangePrice(decimal.RequireFromString("300.00")))
		assert.Equal(t, "635.00", o.TotalAmount().StringFixed(2))
		assert.Equal(t, "250.00", o.Lines()[0].Price().StringFixed(2))
	})

	t.Run("should raise a placed event", func(t *testing.T) {
		itemID := kernel.NewUUID()
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), []*order.Line{
			mustLine(t, itemID, 2, "12.50"),
		})
		require.NoError(t, err)

		events := o.DomainEvents()
		require.Len(t, events, 1)
		placed, ok := events[0].(order.PlacedEvent)
		require.True(t, ok)
		assert.Equal(t, order.EventOrderPlaced, placed.EventName())
		assert.Equal(t, o.ID().Bytes(), placed.AggregateID())
		assert.Equal(t, "25.00", placed.TotalAmount)
		require.Len(t, placed.Lines, 1)
		assert.Equal(t, itemID.String(), placed.Lines[0].ItemID)
	})

	t.Run("should require at least one line", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "At least one item is required")
	})

	t.Run("should reject duplicate items", func(t *testing.T) {
		itemID := kernel.NewUUID()
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), []*order.Line{
			mustLine(t, itemID, 1, "1.00"),
			mustLine(t, itemID, 2, "1.00"),
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "Duplicate items are not allowed")
	})

	t.Run("should collect all field errors", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "shopkeeper_id")
		assert.Contains(t, err.Error(), "warehouse_id")
	})
}

func TestOrder_Lines_ReturnsCopy(t *testing.T) {
	o := mustOrder(t)

	lines := o.Lines()
	lines[0] = nil

	assert.NotNil(t, o.Lines()[0])
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("happy path to delivered", func(t *testing.T) {
		o := mustOrder(t)

		require.NoError(t, o.Accept())
		require.NoError(t, o.StartTransit())
		require.NoError(t, o.MarkDelivered())

		assert.Equal(t, order.Delivered, o.Status())
		events := o.DomainEvents()
		require.Len(t, events, 3)
		last, ok := events[2].(order.StatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, "in_transit", last.From)
		assert.Equal(t, "delivered", last.To)
	})

	t.Run("reject stores the reason", func(t *testing.T) {
		o := mustOrder(t)

		require.NoError(t, o.Reject("  out of delivery area "))

		assert.Equal(t, order.Rejected, o.Status())
		assert.Equal(t, "out of delivery area", o.RejectionReason())
		changed, ok := o.DomainEvents()[0].(order.StatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, "out of delivery area", changed.Reason)
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		o := mustOrder(t)

		err := o.Reject("   ")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("reject of accepted order keeps no reason", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.Accept())

		err := o.Reject("late")

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Empty(t, o.RejectionReason())
	})

	t.Run("shopkeeper can cancel an accepted order", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.Accept())

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("pending cannot jump to delivered", func(t *testing.T) {
		o := mustOrder(t)

		err := o.MarkDelivered()

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("cancelled order is terminal", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.Cancel())

		require.ErrorIs(t, o.Accept(), order.ErrInvalidTransition)
		require.ErrorIs(t, o.Cancel(), order.ErrInvalidTransition)
	})
}

func TestRestoreOrder(t *testing.T) {
	line := mustLine(t, kernel.NewUUID(), 1, "10.00")
	original := mustOrder(t)

	restored, err := order.RestoreOrder(
		original.ID(), original.ShopkeeperID(), original.WarehouseID(),
		order.InTransit, []*order.Line{line}, decimal.RequireFromString("99.99"), "",
		original.CreatedAt(), original.UpdatedAt(),
	)

	require.NoError(t, err)
	assert.Equal(t, order.InTransit, restored.Status())
	assert.Equal(t, "99.99", restored.TotalAmount().StringFixed(2))
	assert.Empty(t, restored.DomainEvents())
	assert.True(t, restored.IsPlacedBy(original.ShopkeeperID()))

	_, err = order.RestoreOrder(original.ID(), original.ShopkeeperID(), original.WarehouseID(),
		order.Status("bogus"), []*order.Line{line}, decimal.Zero, "", original.CreatedAt(), original.UpdatedAt())
	require.Error(t, err)
}

func TestOrder_Validate_ZeroValue(t *testing.T) {
	var o *order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}
