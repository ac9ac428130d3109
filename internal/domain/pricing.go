package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceFeeRate комиссия платформы (12%)
var ServiceFeeRate = decimal.NewFromInt(12).Div(decimal.NewFromInt(100))

const (
	pricingUnit        = 24 * time.Hour
	moneyDecimalPlaces = 2
)

// Pricing расчёт стоимости бронирования
type Pricing struct {
	Units         int
	SubTotal      decimal.Decimal
	ServiceFee    decimal.Decimal
	TotalPrice    decimal.Decimal
	OwnerEarnings decimal.Decimal
}

// ChargeableUnits количество тарифицируемых суток: неполные сутки округляются вверх, минимум 1
func ChargeableUnits(start, end time.Time) int {
	d := end.Sub(start)
	units := int(d / pricingUnit)
	if d%pricingUnit > 0 {
		units++
	}
	if units < 1 {
		units = 1
	}
	return units
}

// CalculatePricing считает стоимость интервала [start, end) по цене ресурса за единицу.
// Тарификация всегда посуточная, независимо от PriceUnit ресурса.
func CalculatePricing(price decimal.Decimal, start, end time.Time) Pricing {
	units := ChargeableUnits(start, end)

	subTotal := price.Mul(decimal.NewFromInt(int64(units))).Round(moneyDecimalPlaces)
	fee := subTotal.Mul(ServiceFeeRate).Round(moneyDecimalPlaces)

	return Pricing{
		Units:         units,
		SubTotal:      subTotal,
		ServiceFee:    fee,
		TotalPrice:    subTotal.Add(fee),
		OwnerEarnings: subTotal,
	}
}
