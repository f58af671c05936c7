package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudshare/cloudshare-cli/internal/common"
)

func TestCreditStoreStartsUnknown(t *testing.T) {
	s := NewCreditStore(&fakeClient{}, testLogger(t))
	c := s.Current()
	assert.False(t, c.Known)
	assert.Equal(t, 0, c.Remaining)
}

func TestCreditStoreRefresh(t *testing.T) {
	client := &fakeClient{creditsVal: 42}
	s := NewCreditStore(client, testLogger(t))

	require.NoError(t, s.Refresh(context.Background()))

	c := s.Current()
	assert.True(t, c.Known)
	assert.Equal(t, 42, c.Remaining)
	assert.Equal(t, 1, client.creditsCalls)
}

func TestCreditStoreRefreshUnprovisionedProfile(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"forbidden", common.ErrForbidden},
		{"not found", common.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewCreditStore(&fakeClient{creditsErr: tt.err}, testLogger(t))

			require.NoError(t, s.Refresh(context.Background()))

			c := s.Current()
			assert.True(t, c.Known)
			assert.Equal(t, common.DefaultCredits, c.Remaining)
		})
	}
}

func TestCreditStoreRefreshErrorKeepsLastValue(t *testing.T) {
	client := &fakeClient{creditsVal: 7}
	s := NewCreditStore(client, testLogger(t))
	require.NoError(t, s.Refresh(context.Background()))

	client.creditsErr = common.ErrUnavailable
	err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnavailable))

	c := s.Current()
	assert.True(t, c.Known)
	assert.Equal(t, 7, c.Remaining)
}

func TestCreditStoreSetClampsNegative(t *testing.T) {
	s := NewCreditStore(&fakeClient{}, testLogger(t))
	s.Set(-3)
	c := s.Current()
	assert.True(t, c.Known)
	assert.Equal(t, 0, c.Remaining)
}

func TestCreditStoreReset(t *testing.T) {
	s := NewCreditStore(&fakeClient{}, testLogger(t))
	s.Set(9)
	s.Reset()
	c := s.Current()
	assert.False(t, c.Known)
	assert.Equal(t, 0, c.Remaining)
}
