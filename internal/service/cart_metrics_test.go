package service

import (
	"testing"

	"github.com/Markwebsolutions/abandoncart/internal/constants"
	"github.com/Markwebsolutions/abandoncart/internal/models"
)

func metricsCart(id, status, value string, hours int, remarks ...models.CartRemark) Cart {
	cart := Cart{
		ID:                  id,
		Status:              status,
		CartValue:           models.ParseMoney(value),
		HoursSinceAbandoned: hours,
	}
	return cart.WithRemarks(remarks)
}

func TestComputeMetricsEmpty(t *testing.T) {
	m := ComputeMetrics(nil, DefaultMetricsOptions())
	if m.Total != 0 || m.ConversionRate != "0" || m.ResponseRate != "0" {
		t.Fatalf("empty metrics should be zero-safe: %+v", m)
	}
	if m.TotalValue.String() != "0.00" || m.PotentialRecovery.String() != "0.00" {
		t.Fatalf("empty values want 0.00: %+v", m)
	}
}

func TestComputeMetricsUsesEffectiveStatus(t *testing.T) {
	carts := []Cart{
		metricsCart("a", constants.CartStatusPending, "100.00", 2),
		metricsCart("b", constants.CartStatusPending, "50.00", 30,
			models.CartRemark{ID: 1, Type: constants.RemarkTypeStatusChange, Status: strPtr(constants.CartStatusCompleted)},
		),
		metricsCart("c", constants.CartStatusInProgress, "20.00", 5,
			models.CartRemark{ID: 2, Type: constants.RemarkTypeEmail, Message: "sent"},
		),
		metricsCart("d", constants.CartStatusFailed, "30.00", 48,
			models.CartRemark{ID: 3, Type: constants.RemarkTypeSMS, Message: "sms", Response: strPtr("no thanks")},
		),
	}
	m := ComputeMetrics(carts, DefaultMetricsOptions())

	if m.Total != 4 || m.Pending != 1 || m.InProgress != 1 || m.Completed != 1 || m.Failed != 1 {
		t.Fatalf("unexpected counts: %+v", m)
	}
	if m.ConversionRate != "25.0" {
		t.Fatalf("conversion want 25.0 got %s", m.ConversionRate)
	}
	if m.TotalValue.String() != "200.00" || m.RecoveredValue.String() != "50.00" {
		t.Fatalf("unexpected values: total=%s recovered=%s", m.TotalValue, m.RecoveredValue)
	}
	// (100 + 20) * 0.3
	if m.PotentialRecovery.String() != "36.00" {
		t.Fatalf("potential recovery want 36.00 got %s", m.PotentialRecovery)
	}
	if m.Urgent != 2 {
		t.Fatalf("urgent want 2 got %d", m.Urgent)
	}
	if m.AwaitingFollowUp != 2 {
		t.Fatalf("awaiting follow-up want 2 got %d", m.AwaitingFollowUp)
	}
	if m.TotalRemarks != 3 || m.RespondedRemarks != 1 || m.ResponseRate != "33.3" {
		t.Fatalf("unexpected remark metrics: %+v", m)
	}
}

func TestNewMetricsOptionsFallback(t *testing.T) {
	opts := NewMetricsOptions(0, "bad")
	if opts.UrgentHours != 24 || opts.RecoveryRate.String() != "0.3" {
		t.Fatalf("want defaults, got %+v", opts)
	}
	opts = NewMetricsOptions(12, "0.5")
	if opts.UrgentHours != 12 || opts.RecoveryRate.String() != "0.5" {
		t.Fatalf("want configured values, got %+v", opts)
	}
}
