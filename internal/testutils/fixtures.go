package testutils

// OrderTransitions is an acyclic order workflow.
func OrderTransitions() map[string][]string {
	return map[string][]string{
		"pending":    {"processing"},
		"processing": {"approved", "rejected"},
		"approved":   {"processed"},
		"rejected":   {},
		"processed":  {},
	}
}

// CycleTransitions is the order workflow where a rejection loops back to pending.
func CycleTransitions() map[string][]string {
	return map[string][]string{
		"pending":    {"processing"},
		"processing": {"approved", "rejected"},
		"approved":   {"processed"},
		"rejected":   {"pending"},
		"processed":  {},
	}
}

// ShippingTransitions is a dense shipment workflow with self-loops and
// undeclared-looking terminals.
func ShippingTransitions() map[string][]string {
	inTransit := []string{
		"stolen",
		"seized_for_inspection",
		"returned_to_sender",
		"delivered",
		"awaiting_pickup_by_receiver",
		"returning_to_sender",
		"lost",
	}
	with := func(self string, drop ...string) []string {
		out := []string{self}
	next:
		for _, s := range inTransit {
			for _, d := range drop {
				if s == d {
					continue next
				}
			}
			if s != self {
				out = append(out, s)
			}
		}
		return out
	}

	return map[string][]string{
		"pending":                     {"shipped"},
		"shipped":                     with("shipped"),
		"lost":                        with("lost"),
		"stolen":                      with("stolen"),
		"seized_for_inspection":       with("seized_for_inspection"),
		"awaiting_pickup_by_receiver": with("awaiting_pickup_by_receiver"),
		"returning_to_sender":         with("returning_to_sender", "awaiting_pickup_by_receiver"),
		"delivered":                   {},
		"returned_to_sender":          {},
	}
}

// PublishingTransitions is a cyclic publishing workflow whose entry status has
// the empty name.
func PublishingTransitions() map[string][]string {
	return map[string][]string{
		"":           {"created", "sent"},
		"created":    {"sent", "sent_error"},
		"sent":       {"published", "rejected"},
		"sent_error": {"created"},
		"rejected":   {"sent"},
		"published":  {"rejected"},
	}
}
