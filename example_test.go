package statusmap_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/aretw0/statusmap"
	"github.com/aretw0/statusmap/pkg/domain"
)

func ExampleMap_Classify() {
	orders, err := statusmap.New(map[string][]string{
		"pending":    {"processing"},
		"processing": {"approved", "rejected"},
		"approved":   {"processed"},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(orders.Classify("pending", "processing").Outcome)
	fmt.Println(orders.Classify("approved", "pending").Outcome)
	fmt.Println(orders.Classify("pending", "processed").Outcome)
	fmt.Println(orders.Classify("rejected", "processed").Outcome)
	fmt.Println(orders.Classify("pending", "shipped").Outcome)
	// Output:
	// valid
	// past
	// future
	// not_related
	// not_found_to
}

func ExampleMap_Validate() {
	orders, err := statusmap.New(map[string][]string{
		"pending":    {"processing"},
		"processing": {"approved", "rejected"},
		"approved":   {"processed"},
		"rejected":   {"pending"},
	})
	if err != nil {
		log.Fatal(err)
	}

	err = orders.Validate("rejected", "processing")
	fmt.Println(errors.Is(err, domain.ErrAmbiguousTransition))
	fmt.Println(err)
	// Output:
	// true
	// transition from rejected to processing is ambiguous: both statuses lie on a cycle
}
