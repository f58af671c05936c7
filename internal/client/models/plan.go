package models

// Plan is a static catalog entry. The catalog is defined client-side and
// never persisted; prices are in major currency units.
type Plan struct {
	ID          string
	Name        string
	Credits     int
	Price       int64
	Features    []string
	Recommended bool
}

// Purchasable reports whether the plan can go through the payment flow.
// The free tier is granted on sign-up, not bought.
func (p Plan) Purchasable() bool {
	return p.Price > 0 && p.Credits > 0
}

// Plans returns the full plan catalog in display order.
func Plans() []Plan {
	return []Plan{
		{
			ID:      "free",
			Name:    "Free",
			Credits: 5,
			Price:   0,
			Features: []string{
				"5 file uploads",
				"Basic file sharing features",
				"Email support",
			},
		},
		{
			ID:      "premium",
			Name:    "Premium",
			Credits: 500,
			Price:   500,
			Features: []string{
				"Upload up to 500 files",
				"Access to all premium features",
				"Priority customer support",
			},
		},
		{
			ID:      "ultimate",
			Name:    "Ultimate",
			Credits: 5000,
			Price:   2500,
			Features: []string{
				"Upload up to 5000 files",
				"Access to all premium features",
				"Priority customer support",
				"Exclusive Ultimate member benefits",
				"Advanced analytics and reporting",
			},
			Recommended: true,
		},
	}
}

// PlanByID looks a plan up in the catalog. The second result is false when
// the id is unknown.
func PlanByID(id string) (Plan, bool) {
	for _, p := range Plans() {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
