package gymnasion_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/gymnasion"
)

// ExampleEngine_ProcessTurn shows one turn against an in-memory session.
func ExampleEngine_ProcessTurn() {
	engine := gymnasion.New(gymnasion.WithSeed(42))

	res, err := engine.ProcessTurn(context.Background(), "example", "A wolf hunts in the moonlight", "elaboration")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Mode)
	fmt.Println(res.Status.WordCount, res.Status.Boredom)
	// Output:
	// elaboration
	// 6 1
}

// ExampleEngine_ProcessTurn_empty shows that empty lines only ask for text.
func ExampleEngine_ProcessTurn_empty() {
	engine := gymnasion.New()

	res, err := engine.ProcessTurn(context.Background(), "example", "  ", "mixed")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Response)
	// Output:
	// Please enter some text.
}
