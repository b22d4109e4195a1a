package catalog

import (
	"testing"

	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func sizeAwareService() *Service {
	return &Service{
		ID:           "svc_1",
		Name:         "Exterior Detail",
		PricingModel: types.PricingModelVehicleSize,
		BasePrice:    decimal.NewFromInt(100),
		Tiers: JSONBTiers{
			{SizeClass: types.VehicleSizeCompact, Label: "Compact", UnitPrice: decimal.NewFromInt(90)},
			{SizeClass: types.VehicleSizeSedan, Label: "Sedan", UnitPrice: decimal.NewFromInt(100)},
			{SizeClass: types.VehicleSizeSUV, Label: "SUV / Crossover", UnitPrice: decimal.NewFromInt(130)},
		},
	}
}

func TestResolvePriceTierMatch(t *testing.T) {
	res := ResolvePrice(sizeAwareService(), types.VehicleSizeSUV)

	assert.True(t, res.UnitPrice.Equal(decimal.NewFromInt(130)))
	assert.Equal(t, "SUV / Crossover", res.TierLabel)
	assert.False(t, res.Incomplete)
}

func TestResolvePriceNoVehicleFallsBackIncomplete(t *testing.T) {
	res := ResolvePrice(sizeAwareService(), "")

	assert.True(t, res.UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.Empty(t, res.TierLabel)
	assert.True(t, res.Incomplete)
}

func TestResolvePriceUncoveredSizeFallsBackIncomplete(t *testing.T) {
	res := ResolvePrice(sizeAwareService(), types.VehicleSizeOversize)

	assert.True(t, res.UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, res.Incomplete)
}

func TestResolvePriceFlatIgnoresVehicle(t *testing.T) {
	svc := &Service{
		ID:           "svc_2",
		Name:         "Air Freshener",
		PricingModel: types.PricingModelFlat,
		BasePrice:    decimal.NewFromInt(5),
	}

	withVehicle := ResolvePrice(svc, types.VehicleSizeSUV)
	withoutVehicle := ResolvePrice(svc, "")

	assert.True(t, withVehicle.UnitPrice.Equal(decimal.NewFromInt(5)))
	assert.True(t, withoutVehicle.UnitPrice.Equal(decimal.NewFromInt(5)))
	assert.False(t, withVehicle.Incomplete)
	assert.False(t, withoutVehicle.Incomplete)
}

func TestResolvePricePerUnitAndCustom(t *testing.T) {
	perUnit := &Service{PricingModel: types.PricingModelPerUnit, BasePrice: decimal.NewFromInt(15)}
	custom := &Service{PricingModel: types.PricingModelCustom, BasePrice: decimal.Zero}

	assert.True(t, ResolvePrice(perUnit, types.VehicleSizeCompact).UnitPrice.Equal(decimal.NewFromInt(15)))
	assert.True(t, ResolvePrice(custom, types.VehicleSizeCompact).UnitPrice.IsZero())
}
