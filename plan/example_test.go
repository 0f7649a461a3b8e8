package plan_test

import (
	"fmt"
	"reflect"
	"strings"

	"tsvwriter/plan"
	"tsvwriter/store"
)

func Example() {
	root, err := plan.Build(plan.Reflect(reflect.TypeFor[store.Product]()))
	if err != nil {
		panic(err)
	}

	for _, c := range root.Children {
		fmt.Println(c.Name, c.Kind, c.Width())
	}
	fmt.Println(strings.Join(root.Headers(), " | "))

	// Output:
	// ID Terminal 1
	// SKU Terminal 1
	// Name Terminal 1
	// PriceCents Terminal 1
	// Tags Collection 1
	// CreatedAt Terminal 1
	// Product ID | SKU | Name | Price (cents) | Tags | Created
}
