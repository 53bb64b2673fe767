package visage_test

import (
	"context"
	"fmt"
	"log"

	"github.com/mengchil/visage"
	"github.com/mengchil/visage/pkg/domain"
	"github.com/mengchil/visage/pkg/dsl"
)

// Switching expressions and reading back composited frames.
func Example() {
	engine, err := visage.New()
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	if err := engine.SetExpression("happy"); err != nil {
		log.Fatal(err)
	}

	snap := engine.Tick(context.Background())
	fmt.Println(snap.ExpressionID, snap.Color)
	// Output: happy #FFFF00
}

// Building a custom preset catalog with the fluent builder.
func Example_customCatalog() {
	reg, err := dsl.BuildRegistry(
		dsl.New("calm").
			Color("#88CCEE").
			Channel(domain.PathEyeLeftOpenness, 0.9).
			Channel(domain.PathEyeRightOpenness, 0.9).
			Channel(domain.PathMouthCurve, 1).
			Sine(domain.PathMouthCurve, 0.25, 0.5),
	)
	if err != nil {
		log.Fatal(err)
	}

	engine, err := visage.New(
		visage.WithPresets(reg),
		visage.WithInitialExpression("calm"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	fmt.Println(engine.CurrentExpression())
	// Output: calm
}
