package booking

import "sort"

// fieldPolicy declares, as data, which booking fields a role may set through
// partial update. Dispatch between the two policies happens on the listing
// ownership verdict, never on the shape of the request.
type fieldPolicy struct {
	role    string
	allowed map[string]bool
}

var (
	landlordPolicy = fieldPolicy{
		role: "landlord",
		allowed: map[string]bool{
			"is_confirmed": true,
		},
	}

	renterPolicy = fieldPolicy{
		role: "renter",
		allowed: map[string]bool{
			"start_date":  true,
			"end_date":    true,
			"is_canceled": true,
		},
	}
)

// disallowed returns the present fields the policy does not permit, sorted for
// stable error messages.
func (p fieldPolicy) disallowed(present []string) []string {
	var out []string
	for _, f := range present {
		if !p.allowed[f] {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}
