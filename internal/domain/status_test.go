package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteStatusTransitions(t *testing.T) {
	tests := []struct {
		from    QuoteStatus
		to      QuoteStatus
		allowed bool
	}{
		{QuoteStatusPending, QuoteStatusQuoted, true},
		{QuoteStatusPending, QuoteStatusRejected, true},
		{QuoteStatusPending, QuoteStatusAccepted, false},
		{QuoteStatusQuoted, QuoteStatusAccepted, true},
		{QuoteStatusQuoted, QuoteStatusRejected, true},
		{QuoteStatusAccepted, QuoteStatusRejected, false},
		{QuoteStatusRejected, QuoteStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestInvoiceStatusTransitions(t *testing.T) {
	tests := []struct {
		from    InvoiceStatus
		to      InvoiceStatus
		allowed bool
	}{
		{InvoiceStatusUnpaid, InvoiceStatusPaid, true},
		{InvoiceStatusUnpaid, InvoiceStatusVoid, true},
		{InvoiceStatusPaid, InvoiceStatusUnpaid, false},
		{InvoiceStatusPaid, InvoiceStatusVoid, false},
		{InvoiceStatusVoid, InvoiceStatusUnpaid, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestLeaveStatusTransitions(t *testing.T) {
	tests := []struct {
		from    LeaveStatus
		to      LeaveStatus
		allowed bool
	}{
		{LeaveStatusPending, LeaveStatusApproved, true},
		{LeaveStatusPending, LeaveStatusRejected, true},
		{LeaveStatusApproved, LeaveStatusRejected, false},
		{LeaveStatusRejected, LeaveStatusApproved, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestUserRole(t *testing.T) {
	assert.True(t, RoleCustomer.IsValid())
	assert.True(t, RoleStaff.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, UserRole("root").IsValid())

	assert.False(t, RoleCustomer.IsStaff())
	assert.True(t, RoleStaff.IsStaff())
	assert.True(t, RoleAdmin.IsStaff())
}
