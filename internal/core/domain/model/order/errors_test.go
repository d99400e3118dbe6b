package order_test

import (
	"fmt"
	"testing"

	"stockway/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidTransitionError_NamesAllowedStates(t *testing.T) {
	tests := []struct {
		name  string
		from  order.Status
		to    order.Status
		actor order.Actor
		want  string
	}{
		{
			name:  "shopkeeper cannot mark accepted order delivered",
			from:  order.Accepted,
			to:    order.Delivered,
			actor: order.ActorShopkeeper,
			want:  "Invalid transition from accepted to delivered. Valid transitions from accepted for shopkeeper: cancelled",
		},
		{
			name:  "rider cannot skip the trip",
			from:  order.Accepted,
			to:    order.Delivered,
			actor: order.ActorRider,
			want:  "Invalid transition from accepted to delivered. Valid transitions from accepted for rider: in_transit",
		},
		{
			name:  "delivered order is final for the warehouse",
			from:  order.Delivered,
			to:    order.Cancelled,
			actor: order.ActorWarehouse,
			want:  "Invalid transition from delivered to cancelled. Valid transitions from delivered for warehouse: none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.from.TransitionTo(tt.actor, tt.to)

			require.ErrorIs(t, err, order.ErrInvalidTransition)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestInvalidTransitionError_SurvivesWrapping(t *testing.T) {
	_, err := order.Pending.TransitionTo(order.ActorRider, order.InTransit)
	wrapped := fmt.Errorf("start delivery: %w", err)

	var transitionErr *order.InvalidTransitionError
	require.ErrorAs(t, wrapped, &transitionErr)
	assert.Equal(t, order.Pending, transitionErr.From)
	assert.Equal(t, order.InTransit, transitionErr.To)
	assert.Equal(t, order.ActorRider, transitionErr.Actor)
	assert.Empty(t, transitionErr.Allowed)
}
