// Package common defines shared constants and sentinel errors used across
// the CloudShare client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Backend/API errors.
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUnavailable  = errors.New("server unavailable")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
	ErrNoToken      = errors.New("no token available")

	// Upload flow errors.
	ErrSubmitInFlight = errors.New("upload already in progress")

	// Payment flow errors.
	ErrGatewayNotReady    = errors.New("payment gateway not ready")
	ErrPurchaseInFlight   = errors.New("purchase already in progress")
	ErrPlanNotPurchasable = errors.New("plan is not purchasable")
	ErrVerificationFailed = errors.New("payment verification failed")
)
