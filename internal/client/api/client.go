// Package api implements the REST client for the CloudShare backend. All
// data-bearing operations (file storage, credit ledger, payment verification,
// transaction log) live behind this interface; everything above it is state
// bookkeeping.
package api

import (
	"context"
	"io"

	"github.com/cloudshare/cloudshare-cli/internal/client/models"
)

// Client is the backend surface consumed by the client's services.
//
// Contract:
//   - ListFiles / PublicFile / Download / Upload / TogglePublic / DeleteFile:
//     the file store.
//   - Credits: the credit ledger.
//   - CreateOrder / VerifyPayment / Transactions: the payment flow.
//   - EnsureProfile: idempotent upsert of the signed-in user's profile.
//
// All methods must honor context cancellation. Authenticated calls obtain a
// bearer token per call; PublicFile needs none.
type Client interface {
	Close() error
	ListFiles(ctx context.Context) ([]models.RemoteFile, error)
	PublicFile(ctx context.Context, fileID string) (*models.RemoteFile, error)
	Download(ctx context.Context, fileID string, w io.Writer) (int64, error)
	Upload(ctx context.Context, batch []models.PendingFile) (*UploadResult, error)
	TogglePublic(ctx context.Context, fileID string) error
	DeleteFile(ctx context.Context, fileID string) error
	Credits(ctx context.Context) (int, error)
	CreateOrder(ctx context.Context, req OrderRequest) (string, error)
	VerifyPayment(ctx context.Context, res models.PaymentResult, planID string) (*VerifyResult, error)
	Transactions(ctx context.Context) ([]models.Transaction, error)
	EnsureProfile(ctx context.Context, p models.Profile) error
}

// OrderRequest is the create-order payload. Amount is in minor currency
// units (plan price × 100).
type OrderRequest struct {
	PlanID   string `json:"planId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Credits  int    `json:"credits"`
}

// UploadResult carries the backend's response to a batch upload.
// RemainingCredits is nil when the server omitted the field.
type UploadResult struct {
	RemainingCredits *int `json:"remainingCredits"`
}

// VerifyResult is the payment-verification outcome. Credits is the updated
// total when the backend includes one; verification and credit update are
// not assumed atomic.
type VerifyResult struct {
	Success bool `json:"success"`
	Credits *int `json:"credits"`
}
