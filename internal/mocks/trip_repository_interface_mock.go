// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/taxi-data-service/internal/domain/model"
)

type MockTripRepositoryInterface struct {
	mock.Mock
}

func (m *MockTripRepositoryInterface) Get(ctx context.Context, id int64) (*model.TaxiTrip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaxiTrip), args.Error(1)
}

func (m *MockTripRepositoryInterface) List(ctx context.Context, offset, limit int) ([]model.TaxiTrip, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaxiTrip), args.Error(1)
}

func (m *MockTripRepositoryInterface) Insert(ctx context.Context, data model.TripCreate) (*model.TaxiTrip, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaxiTrip), args.Error(1)
}

func (m *MockTripRepositoryInterface) Update(ctx context.Context, id int64, patch model.TripPatch) (*model.TaxiTrip, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaxiTrip), args.Error(1)
}

func (m *MockTripRepositoryInterface) Delete(ctx context.Context, id int64) (*model.TaxiTrip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaxiTrip), args.Error(1)
}

func (m *MockTripRepositoryInterface) AggregateByPassengerCount(ctx context.Context) ([]model.PassengerStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PassengerStat), args.Error(1)
}
