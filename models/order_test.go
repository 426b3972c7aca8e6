package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	valid := map[string]OrderStatus{
		"pending":    OrderStatusPending,
		"Processing": OrderStatusProcessing,
		"SHIPPED":    OrderStatusShipped,
		"delivered":  OrderStatusDelivered,
		"cancelled":  OrderStatusCancelled,
	}
	for input, want := range valid {
		got, err := ParseOrderStatus(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got)
	}

	for _, input := range []string{"", "confirmed", "returned", "unknown"} {
		_, err := ParseOrderStatus(input)
		require.Error(t, err, input)
	}
}
