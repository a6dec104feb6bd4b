// Command ratedemo seeds a registry, feeds it a handful of games, and
// prints ordinals. It is a manual demonstration of the library, not part
// of its tested contract.
package main

import (
	"context"
	"fmt"
	"log"

	"ratingengine"
	"ratingengine/batch"
	"ratingengine/registry"
)

func main() {
	model := ratingengine.NewDefault(ratingengine.PlackettLuce)
	reg := registry.New(model, 0)

	games := []batch.Game{
		{Teams: [][]string{{"alice", "bob"}, {"carol", "dave"}}, Ranks: []float64{1, 2}},
		{Teams: [][]string{{"alice", "eve"}, {"frank", "grace"}}, Scores: []float64{10, 20}},
		{Teams: [][]string{{"carol"}, {"eve"}}, Ranks: []float64{1, 2}},
	}

	if err := reg.RateBatch(games); err != nil {
		log.Fatalf("rate batch: %v", err)
	}

	processor := batch.NewProcessor(model, batch.ProcessorOptions{Workers: 4, Pipeline: true})
	parallel, err := processor.Process(context.Background(), games, nil)
	if err != nil {
		log.Fatalf("process: %v", err)
	}

	for id, ms := range reg.ToMap() {
		r := model.CreateRating(ms[0], ms[1], id)
		fmt.Printf("registry  %-8s mu=%6.2f sigma=%5.2f ordinal=%6.2f\n", id, r.Mu, r.Sigma, r.Ordinal())
	}
	for id, ms := range parallel {
		r := model.CreateRating(ms[0], ms[1], id)
		fmt.Printf("processor %-8s mu=%6.2f sigma=%5.2f ordinal=%6.2f\n", id, r.Mu, r.Sigma, r.Ordinal())
	}
}
