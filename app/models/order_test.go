package models

import "testing"

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    OrderStatus
		wantErr bool
	}{
		{in: "processing", want: OrderStatusProcessing},
		{in: "completed", want: OrderStatusCompleted},
		{in: "shipping", want: OrderStatusShipping},
		{in: "cancelled", want: OrderStatusCancelled},
		{in: "canceled", wantErr: true},
		{in: "Processing", wantErr: true},
		{in: "", wantErr: true},
		{in: "refunded", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseOrderStatus(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseOrderStatus(%q) expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseOrderStatus(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseOrderStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOrderCanDelete(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusProcessing, OrderStatusCompleted, OrderStatusShipping} {
		order := Order{Status: status}
		if order.CanDelete() {
			t.Fatalf("expected order with status %q to be undeletable", status)
		}
	}

	order := Order{Status: OrderStatusCancelled}
	if !order.CanDelete() {
		t.Fatalf("expected cancelled order to be deletable")
	}
}

func TestParseNotificationType(t *testing.T) {
	for _, in := range []string{"expiring", "expired", "new_order"} {
		if _, err := ParseNotificationType(in); err != nil {
			t.Fatalf("ParseNotificationType(%q) unexpected error: %v", in, err)
		}
	}
	for _, in := range []string{"", "EXPIRED", "order", "unknown"} {
		if _, err := ParseNotificationType(in); err == nil {
			t.Fatalf("ParseNotificationType(%q) expected error", in)
		}
	}
}
