package catalog

// typeChart holds non-neutral matchups only: attacking element -> defending
// element -> multiplier. Anything absent is 1.0.
var typeChart = map[Element]map[Element]float64{
	ElementFire: {
		ElementGrass: 2.0,
		ElementFire:  0.5,
		ElementWater: 0.5,
	},
	ElementWater: {
		ElementFire:   2.0,
		ElementGround: 2.0,
		ElementWater:  0.5,
		ElementGrass:  0.5,
	},
	ElementGrass: {
		ElementWater:  2.0,
		ElementGround: 2.0,
		ElementGrass:  0.5,
		ElementFire:   0.5,
		ElementFlying: 0.5,
	},
	ElementElectric: {
		ElementWater:    2.0,
		ElementFlying:   2.0,
		ElementGrass:    0.5,
		ElementElectric: 0.5,
		ElementGround:   0.0,
	},
	ElementGround: {
		ElementFire:     2.0,
		ElementElectric: 2.0,
		ElementGrass:    0.5,
		ElementFlying:   0.0,
	},
	ElementFlying: {
		ElementGrass:    2.0,
		ElementElectric: 0.5,
	},
}

// TypeMultiplier returns the elemental damage multiplier for an attacking
// element against a defending element: 2.0 weak, 0.5 resist, 0.0 immune,
// otherwise 1.0.
func TypeMultiplier(attacking, defending Element) float64 {
	if row, ok := typeChart[attacking]; ok {
		if m, ok := row[defending]; ok {
			return m
		}
	}
	return 1.0
}
