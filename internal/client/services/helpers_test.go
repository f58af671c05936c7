package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/cloudshare/cloudshare-cli/internal/client/api"
	"github.com/cloudshare/cloudshare-cli/internal/client/models"
	"github.com/cloudshare/cloudshare-cli/internal/logging"
)

func testLogger(t *testing.T) logging.Logger {
	t.Helper()
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeClient implements api.Client with presets and call recording. Methods
// not overridden panic via the embedded nil interface, which keeps tests
// honest about what they exercise.
type fakeClient struct {
	api.Client

	files     []models.RemoteFile
	listErr   error
	listCalls int

	creditsVal   int
	creditsErr   error
	creditsCalls int

	uploadRes     *api.UploadResult
	uploadErr     error
	uploadBlock   chan struct{}
	uploadBatches [][]models.PendingFile

	toggleErr  error
	toggledIDs []string

	deleteErr  error
	deletedIDs []string

	downloadData []byte
	downloadErr  error

	orderID   string
	orderErr  error
	orderReqs []api.OrderRequest

	verifyRes   *api.VerifyResult
	verifyErr   error
	verifyBlock chan struct{}
	verifyPlans []string
	verifyReses []models.PaymentResult

	ensureErrs  []error
	ensureCalls int

	txs   []models.Transaction
	txErr error
}

func (f *fakeClient) ListFiles(ctx context.Context) ([]models.RemoteFile, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.RemoteFile, len(f.files))
	copy(out, f.files)
	return out, nil
}

func (f *fakeClient) Credits(ctx context.Context) (int, error) {
	f.creditsCalls++
	if f.creditsErr != nil {
		return 0, f.creditsErr
	}
	return f.creditsVal, nil
}

func (f *fakeClient) Upload(ctx context.Context, batch []models.PendingFile) (*api.UploadResult, error) {
	cp := make([]models.PendingFile, len(batch))
	copy(cp, batch)
	f.uploadBatches = append(f.uploadBatches, cp)
	if f.uploadBlock != nil {
		<-f.uploadBlock
	}
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	if f.uploadRes != nil {
		return f.uploadRes, nil
	}
	return &api.UploadResult{}, nil
}

func (f *fakeClient) TogglePublic(ctx context.Context, fileID string) error {
	if f.toggleErr != nil {
		return f.toggleErr
	}
	f.toggledIDs = append(f.toggledIDs, fileID)
	return nil
}

func (f *fakeClient) DeleteFile(ctx context.Context, fileID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, fileID)
	return nil
}

func (f *fakeClient) Download(ctx context.Context, fileID string, w io.Writer) (int64, error) {
	if f.downloadErr != nil {
		return 0, f.downloadErr
	}
	n, err := w.Write(f.downloadData)
	return int64(n), err
}

func (f *fakeClient) CreateOrder(ctx context.Context, req api.OrderRequest) (string, error) {
	f.orderReqs = append(f.orderReqs, req)
	if f.orderErr != nil {
		return "", f.orderErr
	}
	return f.orderID, nil
}

func (f *fakeClient) VerifyPayment(ctx context.Context, res models.PaymentResult, planID string) (*api.VerifyResult, error) {
	if f.verifyBlock != nil {
		<-f.verifyBlock
	}
	f.verifyPlans = append(f.verifyPlans, planID)
	f.verifyReses = append(f.verifyReses, res)
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.verifyRes, nil
}

func (f *fakeClient) EnsureProfile(ctx context.Context, p models.Profile) error {
	f.ensureCalls++
	if len(f.ensureErrs) > 0 {
		err := f.ensureErrs[0]
		f.ensureErrs = f.ensureErrs[1:]
		return err
	}
	return nil
}

func (f *fakeClient) Transactions(ctx context.Context) ([]models.Transaction, error) {
	if f.txErr != nil {
		return nil, f.txErr
	}
	return f.txs, nil
}

func intPtr(n int) *int { return &n }

func pendingFiles(names ...string) []models.PendingFile {
	out := make([]models.PendingFile, 0, len(names))
	for _, n := range names {
		out = append(out, models.PendingFile{Name: n, Size: 1, Path: "/tmp/" + n})
	}
	return out
}
