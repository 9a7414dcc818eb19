package catalog

import "github.com/chrwm/OSEMF-Comparison/internal/series"

// Model regions: Brandenburg and Berlin.
var regions = []string{"BB", "BE"}

// fuel describes one primary energy carrier.
type fuel struct {
	// name is the bus suffix, e.g. "NaturalGas" in "BBNaturalGas".
	name string
	// code is the short form used in import-source labels, e.g. "GAS"
	// in "rBBGAS_IMPORT".
	code string
}

var fuels = []fuel{
	{name: "NaturalGas", code: "GAS"},
	{name: "HardCoal", code: "HCO"},
	{name: "Lignite", code: "LIG"},
	{name: "Oil", code: "OIL"},
	{name: "Biomass", code: "BIO"},
}

// plant describes one thermal converter per region.
type plant struct {
	// suffix forms the label together with the region, e.g. "NGA_P".
	suffix     string
	fuel       string // fuel name, resolves to bus <region><fuel>
	efficiency float64
	varCost    float64

	// dispatchCap is the existing capacity per region for dispatch
	// variants.
	dispatchCap map[string]float64

	// capex and life drive the investment annuity for TI variants.
	// Both keyed by region because Berlin biomass is costlier.
	capex map[string]float64
	life  int

	// blocked lists regions where new builds are excluded: the
	// investment candidate stays in the model with a maximum of zero.
	blocked []string
}

var plants = []plant{
	{
		suffix: "NGA_P", fuel: "NaturalGas",
		efficiency: 0.581395349, varCost: 19.89,
		dispatchCap: map[string]float64{"BB": 733.3, "BE": 1040},
		capex:       map[string]float64{"BB": 600000, "BE": 600000},
		life:        30,
	},
	{
		suffix: "HCO_P", fuel: "HardCoal",
		efficiency: 0.460829493, varCost: 11.24,
		dispatchCap: map[string]float64{"BB": 0, "BE": 777},
		capex:       map[string]float64{"BB": 1800000, "BE": 1800000},
		life:        40,
		blocked:     []string{"BB"},
	},
	{
		suffix: "LIG_P", fuel: "Lignite",
		efficiency: 0.429184549, varCost: 4.72,
		dispatchCap: map[string]float64{"BB": 4409, "BE": 0},
		capex:       map[string]float64{"BB": 1800000, "BE": 1800000},
		life:        40,
		blocked:     []string{"BE"},
	},
	{
		suffix: "OIL_P", fuel: "Oil",
		efficiency: 0.383141762, varCost: 25.17,
		dispatchCap: map[string]float64{"BB": 333.5, "BE": 327},
		capex:       map[string]float64{"BB": 950000, "BE": 950000},
		life:        30,
	},
	{
		suffix: "BIO_P", fuel: "Biomass",
		efficiency: 0.4, varCost: 30.18,
		dispatchCap: map[string]float64{"BB": 439.8, "BE": 45.19},
		capex:       map[string]float64{"BB": 3700000, "BE": 6700000},
		life:        30,
	},
}

// volatile describes one renewable source with a fixed availability
// profile. Technologies absent from a region have no dispatchCap/capex
// entry for it.
type volatile struct {
	suffix      string
	dispatchCap map[string]float64
	capex       map[string]float64
	life        int
}

var volatiles = []volatile{
	{
		suffix:      "WIND_P",
		dispatchCap: map[string]float64{"BB": 6358.14, "BE": 12.38},
		capex:       map[string]float64{"BB": 1330000, "BE": 1330000},
		life:        25,
	},
	{
		suffix:      "SOLPV_P",
		dispatchCap: map[string]float64{"BB": 3205.76, "BE": 86.95},
		capex:       map[string]float64{"BB": 1460000, "BE": 1340000},
		life:        25,
	},
	{
		// Run-of-river hydro exists in Brandenburg only.
		suffix:      "RORHYD_P",
		dispatchCap: map[string]float64{"BB": 4.86},
		capex:       map[string]float64{"BB": 2925000},
		life:        30,
	},
}

// Investment economics and network constants.
const (
	wacc = 0.07

	// transmissionEff is the grid loss factor between the secondary and
	// final electricity bus of a region.
	transmissionEff = 0.9

	// tradeCap limits the inter-regional exchange links.
	tradeCap = 3000

	// backstopCap and backstopCost define the demand backstop: a
	// practically unlimited generator priced so it only runs when the
	// system cannot serve demand otherwise.
	backstopCap  = 999999999
	backstopCost = 1000000000
)

// tradeFee is the variable cost of importing into a region.
var tradeFee = map[string]float64{"BB": 2, "BE": 1}

// S1 reference-system constants.
const (
	s1Demand         = 2.1101
	s1PlantCap       = 3.1101
	s1PlantVarCost   = 9.1202
	s1GasInputFactor = 1.1101
)

// sectionLengths16 holds the hours represented by each of the 16
// aggregated timesteps. They sum to the 8784 hours of the leap year.
var sectionLengths16 = series.Weights{
	360, 360, 540, 900, 552, 368, 552, 736,
	460, 276, 552, 920, 276, 276, 368, 1288,
}

// defaultDemand is the constant electricity demand used for
// single-timestep variants when no dataset is supplied.
var defaultDemand = map[string]float64{"BB": 2110.1, "BE": 1477.1}
