package costs

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"homeledger/server/internal/models"
)

// MockReader is a mock implementation of the Reader interface
type MockReader struct {
	mock.Mock
}

func (m *MockReader) HousePurchasePrice(ctx context.Context, houseID uint) (decimal.Decimal, error) {
	args := m.Called(ctx, houseID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReader) ListActiveAppliances(ctx context.Context, houseID uint) ([]models.Appliance, error) {
	args := m.Called(ctx, houseID)
	return args.Get(0).([]models.Appliance), args.Error(1)
}

func (m *MockReader) ListRepairsForAppliances(ctx context.Context, applianceIDs []uint) ([]models.Repair, error) {
	args := m.Called(ctx, applianceIDs)
	return args.Get(0).([]models.Repair), args.Error(1)
}

func (m *MockReader) ListActiveExteriorFeatures(ctx context.Context, houseID uint) ([]models.ExteriorFeature, error) {
	args := m.Called(ctx, houseID)
	return args.Get(0).([]models.ExteriorFeature), args.Error(1)
}

func (m *MockReader) ListActiveExteriorMaintenance(ctx context.Context, houseID uint) ([]models.ExteriorMaintenance, error) {
	args := m.Called(ctx, houseID)
	return args.Get(0).([]models.ExteriorMaintenance), args.Error(1)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func applianceWithID(id uint, purchase, installation string) models.Appliance {
	a := models.Appliance{
		HouseID:          1,
		PurchaseCost:     dec(purchase),
		InstallationCost: dec(installation),
	}
	a.ID = id
	return a
}

func TestAggregate_FullBreakdown(t *testing.T) {
	reader := &MockReader{}
	reader.On("HousePurchasePrice", mock.Anything, uint(1)).Return(dec("300000"), nil)
	reader.On("ListActiveAppliances", mock.Anything, uint(1)).Return([]models.Appliance{
		applianceWithID(7, "1200", "300"),
	}, nil)
	reader.On("ListRepairsForAppliances", mock.Anything, []uint{7}).Return([]models.Repair{
		{ApplianceID: 7, Cost: dec("150")},
	}, nil)
	reader.On("ListActiveExteriorFeatures", mock.Anything, uint(1)).Return([]models.ExteriorFeature{
		{HouseID: 1, Name: "Deck", BuildCost: dec("5000")},
	}, nil)
	reader.On("ListActiveExteriorMaintenance", mock.Anything, uint(1)).Return([]models.ExteriorMaintenance{
		{HouseID: 1, Description: "Gutter cleaning", Cost: dec("800")},
	}, nil)

	aggregator := NewAggregator(reader, logrus.New())
	breakdown, err := aggregator.Aggregate(context.Background(), 1)

	assert.NoError(t, err)
	assert.True(t, dec("300000").Equal(breakdown.HousePurchase))
	assert.True(t, dec("1200").Equal(breakdown.Appliances))
	assert.True(t, dec("300").Equal(breakdown.ApplianceInstallation))
	assert.True(t, dec("150").Equal(breakdown.ApplianceRepairs))
	assert.True(t, dec("5000").Equal(breakdown.ExteriorFeatures))
	assert.True(t, dec("800").Equal(breakdown.ExteriorMaintenance))
	assert.True(t, dec("307450").Equal(breakdown.TotalCost))
	reader.AssertExpectations(t)
}

func TestAggregate_NoAppliancesSkipsRepairLookup(t *testing.T) {
	reader := &MockReader{}
	reader.On("HousePurchasePrice", mock.Anything, uint(2)).Return(dec("250000"), nil)
	reader.On("ListActiveAppliances", mock.Anything, uint(2)).Return([]models.Appliance{}, nil)
	reader.On("ListActiveExteriorFeatures", mock.Anything, uint(2)).Return([]models.ExteriorFeature{}, nil)
	reader.On("ListActiveExteriorMaintenance", mock.Anything, uint(2)).Return([]models.ExteriorMaintenance{}, nil)

	aggregator := NewAggregator(reader, logrus.New())
	breakdown, err := aggregator.Aggregate(context.Background(), 2)

	assert.NoError(t, err)
	assert.True(t, breakdown.ApplianceRepairs.IsZero())
	assert.True(t, dec("250000").Equal(breakdown.TotalCost))
	reader.AssertNotCalled(t, "ListRepairsForAppliances", mock.Anything, mock.Anything)
}

func TestAggregate_EmptyHouseIsPurchaseOnly(t *testing.T) {
	reader := &MockReader{}
	reader.On("HousePurchasePrice", mock.Anything, uint(3)).Return(decimal.Zero, nil)
	reader.On("ListActiveAppliances", mock.Anything, uint(3)).Return([]models.Appliance{}, nil)
	reader.On("ListActiveExteriorFeatures", mock.Anything, uint(3)).Return([]models.ExteriorFeature{}, nil)
	reader.On("ListActiveExteriorMaintenance", mock.Anything, uint(3)).Return([]models.ExteriorMaintenance{}, nil)

	aggregator := NewAggregator(reader, logrus.New())
	breakdown, err := aggregator.Aggregate(context.Background(), 3)

	assert.NoError(t, err)
	assert.True(t, breakdown.TotalCost.IsZero())
}

func TestAggregate_ReadFailureReturnsError(t *testing.T) {
	reader := &MockReader{}
	readErr := errors.New("db gone")
	reader.On("HousePurchasePrice", mock.Anything, uint(4)).Return(decimal.Zero, nil).Maybe()
	reader.On("ListActiveAppliances", mock.Anything, uint(4)).Return([]models.Appliance{}, readErr)
	reader.On("ListActiveExteriorFeatures", mock.Anything, uint(4)).Return([]models.ExteriorFeature{}, nil).Maybe()
	reader.On("ListActiveExteriorMaintenance", mock.Anything, uint(4)).Return([]models.ExteriorMaintenance{}, nil).Maybe()

	aggregator := NewAggregator(reader, logrus.New())
	_, err := aggregator.Aggregate(context.Background(), 4)

	assert.Error(t, err)
	assert.ErrorIs(t, err, readErr)
}

func TestAggregate_RepairFailureReturnsError(t *testing.T) {
	reader := &MockReader{}
	readErr := errors.New("repairs unavailable")
	reader.On("HousePurchasePrice", mock.Anything, uint(5)).Return(dec("100"), nil)
	reader.On("ListActiveAppliances", mock.Anything, uint(5)).Return([]models.Appliance{
		applianceWithID(9, "10", "0"),
	}, nil)
	reader.On("ListActiveExteriorFeatures", mock.Anything, uint(5)).Return([]models.ExteriorFeature{}, nil)
	reader.On("ListActiveExteriorMaintenance", mock.Anything, uint(5)).Return([]models.ExteriorMaintenance{}, nil)
	reader.On("ListRepairsForAppliances", mock.Anything, []uint{9}).Return([]models.Repair{}, readErr)

	aggregator := NewAggregator(reader, logrus.New())
	_, err := aggregator.Aggregate(context.Background(), 5)

	assert.Error(t, err)
	assert.ErrorIs(t, err, readErr)
}

func TestAggregate_SumIsOrderIndependent(t *testing.T) {
	appliances := []models.Appliance{
		applianceWithID(1, "100.10", "10"),
		applianceWithID(2, "200.20", "20"),
		applianceWithID(3, "300.30", "30"),
	}
	reversed := []models.Appliance{appliances[2], appliances[1], appliances[0]}

	run := func(set []models.Appliance) models.CostBreakdown {
		reader := &MockReader{}
		reader.On("HousePurchasePrice", mock.Anything, uint(6)).Return(decimal.Zero, nil)
		reader.On("ListActiveAppliances", mock.Anything, uint(6)).Return(set, nil)
		reader.On("ListRepairsForAppliances", mock.Anything, mock.Anything).Return([]models.Repair{}, nil)
		reader.On("ListActiveExteriorFeatures", mock.Anything, uint(6)).Return([]models.ExteriorFeature{}, nil)
		reader.On("ListActiveExteriorMaintenance", mock.Anything, uint(6)).Return([]models.ExteriorMaintenance{}, nil)

		aggregator := NewAggregator(reader, logrus.New())
		breakdown, err := aggregator.Aggregate(context.Background(), 6)
		assert.NoError(t, err)
		return breakdown
	}

	forward := run(appliances)
	backward := run(reversed)
	assert.True(t, forward.Appliances.Equal(backward.Appliances))
	assert.True(t, forward.TotalCost.Equal(backward.TotalCost))
	assert.True(t, dec("600.60").Equal(forward.Appliances))
}
