// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/taxi-data-service/internal/domain/model"
)

type MockTripService struct {
	mock.Mock
}

func (m *MockTripService) CreateTrip(ctx context.Context, data model.TripCreate) (*model.TaxiTrip, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaxiTrip), args.Error(1)
}

func (m *MockTripService) GetTrip(ctx context.Context, id int64) (*model.TaxiTrip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaxiTrip), args.Error(1)
}

func (m *MockTripService) ListTrips(ctx context.Context, skip, limit int) ([]model.TaxiTrip, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaxiTrip), args.Error(1)
}

func (m *MockTripService) UpdateTrip(ctx context.Context, id int64, patch model.TripPatch) (*model.TaxiTrip, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaxiTrip), args.Error(1)
}

func (m *MockTripService) DeleteTrip(ctx context.Context, id int64) (*model.TaxiTrip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaxiTrip), args.Error(1)
}

func (m *MockTripService) PassengerStats(ctx context.Context) ([]model.PassengerStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PassengerStat), args.Error(1)
}
