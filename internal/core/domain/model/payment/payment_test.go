package payment_test

import (
	"testing"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/payment"
	"shipment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommissionFor(t *testing.T) {
	tests := []struct {
		price    string
		expected string
	}{
		{"100.00", "2.5"},
		{"200", "5"},
		{"33.33", "0.83"},
		{"0", "0"},
		{"1", "0.03"},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			price := decimal.RequireFromString(tt.price)
			expected := decimal.RequireFromString(tt.expected)
			assert.True(t, payment.CommissionFor(price).Equal(expected),
				"commission for %s: got %s, want %s", tt.price, payment.CommissionFor(price), expected)
		})
	}
}

func newTestPayment(t *testing.T, price decimal.Decimal) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), price)
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	p := newTestPayment(t, decimal.NewFromInt(200))

	assert.True(t, p.Amount().Equal(decimal.RequireFromString("5")))
	assert.Equal(t, payment.StatusPending, p.Status())
	assert.False(t, p.DriverConfirmed())
	assert.False(t, p.HasIssue())
	assert.Equal(t, payment.PlaceholderMethod, p.Method())
	assert.Contains(t, p.Reference(), "PENDING-")
}

func TestPaymentSubmit(t *testing.T) {
	t.Run("records details and resets review", func(t *testing.T) {
		p := newTestPayment(t, decimal.NewFromInt(100))
		require.NoError(t, p.Review(payment.StatusRejected, "illegible screenshot"))

		err := p.Submit(decimal.NewFromInt(100), "BANK_TRANSFER", "TRX-42", "https://cdn/shot.png")
		require.NoError(t, err)

		assert.Equal(t, "BANK_TRANSFER", p.Method())
		assert.Equal(t, "TRX-42", p.Reference())
		assert.Equal(t, payment.StatusPending, p.Status())
		assert.Empty(t, p.Notes())
		assert.True(t, p.Amount().Equal(decimal.RequireFromString("2.5")))
	})

	t.Run("requires method and reference", func(t *testing.T) {
		p := newTestPayment(t, decimal.NewFromInt(100))

		assert.ErrorIs(t, p.Submit(decimal.NewFromInt(100), "", "TRX", ""), errs.ErrValueIsRequired)
		assert.ErrorIs(t, p.Submit(decimal.NewFromInt(100), "BANK", "", ""), errs.ErrValueIsRequired)
	})
}

func TestPaymentReview(t *testing.T) {
	t.Run("confirm", func(t *testing.T) {
		p := newTestPayment(t, decimal.NewFromInt(100))
		require.NoError(t, p.Review(payment.StatusConfirmed, "verified"))

		assert.Equal(t, payment.StatusConfirmed, p.Status())
		assert.Equal(t, "verified", p.Notes())
	})

	t.Run("reject", func(t *testing.T) {
		p := newTestPayment(t, decimal.NewFromInt(100))
		require.NoError(t, p.Review(payment.StatusRejected, "amount mismatch"))
		assert.Equal(t, payment.StatusRejected, p.Status())
	})

	t.Run("pending is not a verdict", func(t *testing.T) {
		p := newTestPayment(t, decimal.NewFromInt(100))
		err := p.Review(payment.StatusPending, "")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPaymentDriverConfirm(t *testing.T) {
	p := newTestPayment(t, decimal.NewFromInt(100))
	p.DriverConfirm()

	assert.True(t, p.DriverConfirmed())
	// Attestation must not touch the admin-side status.
	assert.Equal(t, payment.StatusPending, p.Status())
}

func TestPaymentReportIssue(t *testing.T) {
	t.Run("with details", func(t *testing.T) {
		p := newTestPayment(t, decimal.NewFromInt(100))
		p.ReportIssue("transfer bounced")

		assert.True(t, p.HasIssue())
		assert.Equal(t, "transfer bounced", p.IssueDetails())
	})

	t.Run("default details", func(t *testing.T) {
		p := newTestPayment(t, decimal.NewFromInt(100))
		p.ReportIssue("")
		assert.Equal(t, "Driver reported an issue", p.IssueDetails())
	})
}

func TestStatusFromString(t *testing.T) {
	status, err := payment.StatusFromString("confirmed")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusConfirmed, status)

	_, err = payment.StatusFromString("PAID")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestPaymentValidate(t *testing.T) {
	var p payment.Payment
	assert.ErrorIs(t, p.Validate(), payment.ErrPaymentIsNotConstructed)
}
