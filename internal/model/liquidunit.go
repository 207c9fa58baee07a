package model

// LiquidUnit is the display unit for volumes. It never affects stored
// values, which are always milliliters.
type LiquidUnit string

const (
	Milliliter   LiquidUnit = "ml"
	USFluidOunce LiquidUnit = "oz_us"
	UKFluidOunce LiquidUnit = "oz_uk"
)

// ParseLiquidUnit maps a serialized token to a unit. Unknown or empty
// tokens fall back to Milliliter.
func ParseLiquidUnit(s string) LiquidUnit {
	switch LiquidUnit(s) {
	case USFluidOunce:
		return USFluidOunce
	case UKFluidOunce:
		return UKFluidOunce
	default:
		return Milliliter
	}
}

// Multiplier converts one milliliter into this unit.
func (u LiquidUnit) Multiplier() float64 {
	switch u {
	case USFluidOunce:
		return 0.033814
	case UKFluidOunce:
		return 0.035195
	default:
		return 1.0
	}
}

func (u LiquidUnit) Convert(m Milliliters) float64 {
	return float64(m) * u.Multiplier()
}

func (u LiquidUnit) Format() string {
	switch u {
	case USFluidOunce:
		return "US Ounces (fl oz US)"
	case UKFluidOunce:
		return "UK Ounces (fl oz UK)"
	default:
		return "Milliliters (ml)"
	}
}
