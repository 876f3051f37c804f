// Package category defines the static per-category transaction model: how
// many transactions a monthly total splits into, how amounts disperse, which
// days of the month they land on, and which merchants and payment methods
// they draw from.
package category

import (
	"fmt"
	"strings"
	"sync"
)

// DateBias names the policy for placing transaction dates within a month.
type DateBias string

const (
	BiasFixed      DateBias = "fixed"
	BiasEarlyMonth DateBias = "early_month"
	BiasWeekend    DateBias = "weekend"
	BiasWeekday    DateBias = "weekday"
	BiasMidToLate  DateBias = "mid_to_late_month"
	BiasUniform    DateBias = "uniform"
)

// PaymentWeight is one payment method with its relative weight.
// Weights are kept as an ordered slice rather than a map so weighted picks
// consume random draws in a stable order.
type PaymentWeight struct {
	Method string
	Weight float64
}

// Config holds the transaction model for a single expense category.
type Config struct {
	// Name is the input column name, e.g. "groceries_expense".
	Name string

	// MinCount and MaxCount bound the per-month transaction count.
	MinCount int
	MaxCount int

	// MinAmount is the per-transaction floor enforced in strict mode.
	MinAmount int64

	// FlexThreshold is the monthly total below which flexible mode applies
	// and individual amounts may fall under MinAmount. The boundary is
	// closed on the strict side: total == FlexThreshold is strict.
	FlexThreshold int64

	// DateBias selects the day-of-month placement policy.
	DateBias DateBias

	// SpecificDays anchors dates for the fixed and early_month biases.
	SpecificDays []int

	// Merchants is the pool a transaction's merchant is drawn from.
	Merchants []string

	// PaymentMethods is the weighted payment method pool.
	PaymentMethods []PaymentWeight

	// OnlineProbability is the chance a transaction is flagged online.
	OnlineProbability float64

	// DispersionAlpha controls how evenly a total splits across
	// transactions: low values give a few dominant amounts plus many small
	// ones, high values give near-equal shares.
	DispersionAlpha float64
}

// DisplayName returns the category name with the _expense suffix stripped,
// as used in output rows.
func (c Config) DisplayName() string {
	return strings.TrimSuffix(c.Name, "_expense")
}

var (
	table    []Config
	tableErr error
	once     sync.Once
)

// Load returns the validated category table. The table is built and
// validated once; a validation failure is reported on every call.
func Load() ([]Config, error) {
	once.Do(func() {
		table = buildTable()
		tableErr = validate(table)
	})
	if tableErr != nil {
		return nil, tableErr
	}
	return table, nil
}

// Names returns the category column names in table order.
func Names() ([]string, error) {
	configs, err := Load()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(configs))
	for i, c := range configs {
		names[i] = c.Name
	}
	return names, nil
}

// validate fails fast on malformed entries so bad configuration surfaces at
// startup instead of at the first random pick.
func validate(configs []Config) error {
	seen := make(map[string]bool)
	for _, c := range configs {
		if c.Name == "" {
			return fmt.Errorf("category with empty name")
		}
		if seen[c.Name] {
			return fmt.Errorf("category %s: duplicate entry", c.Name)
		}
		seen[c.Name] = true

		if c.MinCount < 1 || c.MaxCount < c.MinCount {
			return fmt.Errorf("category %s: invalid count range [%d, %d]", c.Name, c.MinCount, c.MaxCount)
		}
		if c.MinAmount <= 0 {
			return fmt.Errorf("category %s: min amount must be positive", c.Name)
		}
		if c.FlexThreshold < 0 {
			return fmt.Errorf("category %s: flex threshold must be non-negative", c.Name)
		}
		if len(c.Merchants) == 0 {
			return fmt.Errorf("category %s: merchant list is empty", c.Name)
		}
		if len(c.PaymentMethods) == 0 {
			return fmt.Errorf("category %s: payment method list is empty", c.Name)
		}
		for _, pw := range c.PaymentMethods {
			if pw.Weight < 0 {
				return fmt.Errorf("category %s: negative weight for payment method %s", c.Name, pw.Method)
			}
		}
		if c.OnlineProbability < 0 || c.OnlineProbability > 1 {
			return fmt.Errorf("category %s: online probability must be in [0, 1]", c.Name)
		}
		if c.DispersionAlpha <= 0 {
			return fmt.Errorf("category %s: dispersion alpha must be positive", c.Name)
		}
		switch c.DateBias {
		case BiasFixed, BiasEarlyMonth, BiasWeekend, BiasWeekday, BiasMidToLate, BiasUniform:
		default:
			return fmt.Errorf("category %s: unknown date bias %q", c.Name, c.DateBias)
		}
		if c.DateBias == BiasFixed && len(c.SpecificDays) == 0 {
			return fmt.Errorf("category %s: fixed date bias requires specific days", c.Name)
		}
		for _, d := range c.SpecificDays {
			if d < 1 || d > 31 {
				return fmt.Errorf("category %s: specific day %d out of range", c.Name, d)
			}
		}
	}
	return nil
}

func buildTable() []Config {
	return []Config{
		{
			Name:          "food_expense",
			MinCount:      15,
			MaxCount:      50,
			MinAmount:     100,
			FlexThreshold: 150,
			DateBias:      BiasUniform,
			Merchants: []string{
				"Zomato", "Swiggy", "Local Restaurant", "Cafe Coffee Day", "Dominos",
				"McDonald's", "Subway", "Haldiram's", "Street Food", "Biryani House",
				"KFC", "Pizza Hut", "Burger King", "Food Court", "Dhaba",
			},
			PaymentMethods: []PaymentWeight{
				{"UPI", 0.50}, {"Credit Card", 0.20}, {"Debit Card", 0.15}, {"Cash", 0.15},
			},
			OnlineProbability: 0.70,
			DispersionAlpha:   1.0,
		},
		{
			Name:          "groceries_expense",
			MinCount:      2,
			MaxCount:      8,
			MinAmount:     100,
			FlexThreshold: 200,
			DateBias:      BiasWeekend,
			SpecificDays:  []int{6, 13, 20, 27},
			Merchants: []string{
				"DMart", "Big Bazaar", "Reliance Fresh", "More Supermarket",
				"Spencer's", "Local Kirana", "24Seven", "Nature's Basket",
			},
			PaymentMethods: []PaymentWeight{
				{"UPI", 0.40}, {"Credit Card", 0.25}, {"Debit Card", 0.25}, {"Cash", 0.10},
			},
			OnlineProbability: 0.30,
			DispersionAlpha:   2.0,
		},
		{
			Name:          "education_expense",
			MinCount:      1,
			MaxCount:      3,
			MinAmount:     300,
			FlexThreshold: 400,
			DateBias:      BiasEarlyMonth,
			SpecificDays:  []int{1, 5, 10},
			Merchants: []string{
				"Course Fee", "Udemy", "Coursera", "Books", "Study Material",
				"Tuition", "Library", "Online Class", "Exam Fee",
			},
			PaymentMethods: []PaymentWeight{
				{"UPI", 0.30}, {"Credit Card", 0.30}, {"Debit Card", 0.25}, {"Net Banking", 0.15},
			},
			OnlineProbability: 0.80,
			DispersionAlpha:   3.0,
		},
		{
			Name:          "subscriptions_expense",
			MinCount:      1,
			MaxCount:      3,
			MinAmount:     100,
			FlexThreshold: 150,
			DateBias:      BiasFixed,
			SpecificDays:  []int{1, 5, 15, 25},
			Merchants: []string{
				"Netflix", "Amazon Prime", "Spotify", "Hotstar", "Gym Membership",
				"Newspaper", "Magazine", "Cloud Storage", "Software License",
			},
			PaymentMethods: []PaymentWeight{
				{"Credit Card", 0.50}, {"UPI", 0.30}, {"Debit Card", 0.20},
			},
			OnlineProbability: 0.95,
			DispersionAlpha:   5.0,
		},
		{
			Name:          "rent_expense",
			MinCount:      1,
			MaxCount:      2,
			MinAmount:     3000,
			FlexThreshold: 3000,
			DateBias:      BiasFixed,
			SpecificDays:  []int{1, 2, 3, 5},
			Merchants: []string{
				"Landlord Transfer", "Housing Society", "PG Accommodation",
				"NoBroker Pay", "Rental Agency", "Co-living Space",
			},
			PaymentMethods: []PaymentWeight{
				{"Net Banking", 0.40}, {"UPI", 0.35}, {"Bank Transfer", 0.25},
			},
			OnlineProbability: 0.60,
			DispersionAlpha:   4.0,
		},
		{
			Name:          "fuel_expense",
			MinCount:      4,
			MaxCount:      10,
			MinAmount:     50,
			FlexThreshold: 100,
			DateBias:      BiasUniform,
			Merchants: []string{
				"HP Petrol Pump", "Indian Oil", "Bharat Petroleum", "Shell",
				"Essar Petrol Pump", "Reliance Petrol",
			},
			PaymentMethods: []PaymentWeight{
				{"UPI", 0.45}, {"Credit Card", 0.30}, {"Debit Card", 0.15}, {"Cash", 0.10},
			},
			OnlineProbability: 0.20,
			DispersionAlpha:   1.5,
		},
		{
			Name:          "transportation_expense",
			MinCount:      15,
			MaxCount:      30,
			MinAmount:     50,
			FlexThreshold: 100,
			DateBias:      BiasWeekday,
			Merchants: []string{
				"Uber", "Ola", "Metro Card", "Auto Rickshaw", "Bus Pass",
				"Rapido", "Local Train", "Parking", "Toll",
			},
			PaymentMethods: []PaymentWeight{
				{"UPI", 0.60}, {"Cash", 0.25}, {"Debit Card", 0.10}, {"Credit Card", 0.05},
			},
			OnlineProbability: 0.75,
			DispersionAlpha:   0.8,
		},
		{
			Name:          "utilities_expense",
			MinCount:      2,
			MaxCount:      5,
			MinAmount:     100,
			FlexThreshold: 150,
			DateBias:      BiasEarlyMonth,
			SpecificDays:  []int{1, 3, 5, 7},
			Merchants: []string{
				"Electricity Bill", "Water Bill", "Gas Cylinder", "Internet Bill",
				"Mobile Recharge", "DTH Recharge", "Maintenance Charge",
			},
			PaymentMethods: []PaymentWeight{
				{"Net Banking", 0.40}, {"UPI", 0.35}, {"Debit Card", 0.15}, {"Credit Card", 0.10},
			},
			OnlineProbability: 0.90,
			DispersionAlpha:   3.5,
		},
		{
			Name:          "entertainment_expense",
			MinCount:      3,
			MaxCount:      10,
			MinAmount:     150,
			FlexThreshold: 250,
			DateBias:      BiasWeekend,
			Merchants: []string{
				"BookMyShow", "PVR Cinemas", "Inox", "Gaming", "Concert Ticket",
				"Sports Event", "Museum", "Theme Park", "Club Entry",
			},
			PaymentMethods: []PaymentWeight{
				{"UPI", 0.45}, {"Credit Card", 0.30}, {"Debit Card", 0.15}, {"Cash", 0.10},
			},
			OnlineProbability: 0.85,
			DispersionAlpha:   1.5,
		},
		{
			Name:          "shopping_expense",
			MinCount:      3,
			MaxCount:      8,
			MinAmount:     100,
			FlexThreshold: 200,
			DateBias:      BiasMidToLate,
			SpecificDays:  []int{10, 12, 15, 18, 20, 22, 25},
			Merchants: []string{
				"Amazon", "Flipkart", "Myntra", "Ajio", "Lifestyle", "Pantaloons",
				"Westside", "Local Shop", "Decathlon", "Electronics Store",
			},
			PaymentMethods: []PaymentWeight{
				{"Credit Card", 0.35}, {"UPI", 0.40}, {"Debit Card", 0.15}, {"Cash", 0.10},
			},
			OnlineProbability: 0.70,
			DispersionAlpha:   1.2,
		},
		{
			Name:          "healthcare_expense",
			MinCount:      1,
			MaxCount:      3,
			MinAmount:     350,
			FlexThreshold: 500,
			DateBias:      BiasUniform,
			Merchants: []string{
				"Apollo Pharmacy", "MedPlus", "Doctor Consultation", "Lab Test",
				"Hospital", "Dental Clinic", "Physiotherapy", "Health Checkup",
			},
			PaymentMethods: []PaymentWeight{
				{"UPI", 0.35}, {"Cash", 0.30}, {"Credit Card", 0.20}, {"Debit Card", 0.15},
			},
			OnlineProbability: 0.40,
			DispersionAlpha:   2.5,
		},
		{
			Name:          "personal_care_expense",
			MinCount:      2,
			MaxCount:      6,
			MinAmount:     270,
			FlexThreshold: 400,
			DateBias:      BiasWeekend,
			Merchants: []string{
				"Salon", "Spa", "Barber Shop", "Beauty Parlor", "Cosmetics",
				"Personal Care Products", "Grooming", "Wellness Center",
			},
			PaymentMethods: []PaymentWeight{
				{"UPI", 0.40}, {"Cash", 0.35}, {"Credit Card", 0.15}, {"Debit Card", 0.10},
			},
			OnlineProbability: 0.35,
			DispersionAlpha:   2.0,
		},
		{
			Name:          "miscellaneous_expense",
			MinCount:      5,
			MaxCount:      20,
			MinAmount:     150,
			FlexThreshold: 250,
			DateBias:      BiasUniform,
			Merchants: []string{
				"Gifts", "Charity", "Emergency", "Repairs", "Services",
				"Miscellaneous", "Courier", "ATM Withdrawal", "Bank Charges",
			},
			PaymentMethods: []PaymentWeight{
				{"UPI", 0.40}, {"Cash", 0.30}, {"Credit Card", 0.15}, {"Debit Card", 0.15},
			},
			OnlineProbability: 0.50,
			DispersionAlpha:   0.7,
		},
	}
}
