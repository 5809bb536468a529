package parse_test

import (
	"fmt"

	"shape-caster/catalog"
	"shape-caster/parse"
	"shape-caster/shape"
)

func Example() {
	cat := catalog.NewStatic()

	person := cat.Register(
		shape.TypeID{Name: "Person"},
		[]shape.Field{
			{Name: "name", Shape: shape.ScalarOf[string]()},
			{Name: "age", Shape: shape.ScalarOf[int]()},
		},
		nil,
	)

	factory, _ := parse.New(cat, cat)
	parser := factory.Parser(person)

	v, err := parser(map[string]any{"name": "Harry", "age": 42})
	record := v.(map[string]any)
	fmt.Println(record["name"], record["age"], err)

	_, err = parser(map[string]any{"age": 33})
	fmt.Println(err)

	_, err = parser(map[string]any{"name": "Harry", "age": "foo"})
	fmt.Println(err)

	// Output:
	// Harry 42 <nil>
	// 'name' not found in data
	// 'age' in data not compatible with 'int'
}
