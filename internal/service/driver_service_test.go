package service

import (
	"context"
	"testing"

	"kusina/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDriverService_UpdateLocation(t *testing.T) {
	repo := new(MockDriverRepository)
	svc := &driverService{driverRepo: repo, logger: zerolog.Nop()}

	repo.On("UpdateLocation", mock.Anything, int64(7), 14.5995, 120.9842).Return(nil)

	err := svc.UpdateLocation(context.Background(), 7, 14.5995, 120.9842)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDriverService_UpdateLocation_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
	}{
		{"latitude too high", 91, 120},
		{"latitude too low", -91, 120},
		{"longitude too high", 14, 181},
		{"longitude too low", 14, -181},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockDriverRepository)
			svc := &driverService{driverRepo: repo, logger: zerolog.Nop()}

			err := svc.UpdateLocation(context.Background(), 7, tt.lat, tt.lng)

			assert.True(t, model.IsValidation(err))
			repo.AssertNotCalled(t, "UpdateLocation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
