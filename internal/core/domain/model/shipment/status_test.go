package shipment_test

import (
	"testing"

	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	for _, s := range []shipment.Status{shipment.OutForDelivery, shipment.Delivered, shipment.Returned} {
		t.Run(s.String(), func(t *testing.T) {
			require.NoError(t, s.Validate())
		})
	}

	err := shipment.Unknown.Validate()
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.Error(t, shipment.Status(42).Validate())
}

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    shipment.Status
		apply   func(shipment.Status) (shipment.Status, error)
		want    shipment.Status
		wantErr bool
	}{
		{name: "deliver from out for delivery", from: shipment.OutForDelivery, apply: shipment.Status.Deliver, want: shipment.Delivered},
		{name: "return from out for delivery", from: shipment.OutForDelivery, apply: shipment.Status.Return, want: shipment.Returned},
		{name: "deliver twice", from: shipment.Delivered, apply: shipment.Status.Deliver, wantErr: true},
		{name: "return delivered", from: shipment.Delivered, apply: shipment.Status.Return, wantErr: true},
		{name: "deliver returned", from: shipment.Returned, apply: shipment.Status.Deliver, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.apply(tt.from)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsTerminal())
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "OUT_FOR_DELIVERY", shipment.OutForDelivery.String())
	assert.Equal(t, "UNKNOWN", shipment.Status(99).String())
}
