package commands

import "martcore/internal/pkg/errs"

// Sentinel errors exposed to the handler layer. Four classes per the error
// taxonomy: validation, business rejection, concurrency conflict, not-found.
var (
	// not-found
	ErrOrderNotFound  = errs.New("order not found")
	ErrCouponNotFound = errs.New("coupon not found")
	ErrZoneNotFound   = errs.New("shipping zone not found")
	ErrRuleNotFound   = errs.New("discount rule not found")
	ErrAlertNotFound  = errs.New("dead stock alert not found")

	// validation rejection
	ErrDomainValidation = errs.New("domain validation error")

	// business rule rejection
	ErrCouponRejected     = errs.New("coupon rejected")
	ErrSlabOverlap        = errs.New("overlapping rate slab")
	ErrIllegalTransition  = errs.New("illegal order status transition")
	ErrIneligibleAlert    = errs.New("alert is not eligible for a discount proposal")
	ErrDuplicateProposal  = errs.New("a pending proposal already exists for this alert")
	ErrInvalidCredentials = errs.New("invalid credentials")

	// concurrency conflict
	ErrRedemptionRecorded = errs.New("redemption already recorded")
	ErrSlabConflict       = errs.New("concurrent rate slab creation conflict")

	// infrastructure
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)
