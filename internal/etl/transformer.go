package etl

import (
	"context"
	"fmt"
	"strings"

	"github.com/BartekS5/personbatch/pkg/models"
)

// SwapProcessor exchanges the first and last name. Applying it twice
// yields the original record.
type SwapProcessor struct{}

func (SwapProcessor) Process(_ context.Context, p models.Person) (models.Person, error) {
	return models.NewPerson(p.LastName, p.FirstName), nil
}

type IdentityProcessor struct{}

func (IdentityProcessor) Process(_ context.Context, p models.Person) (models.Person, error) {
	return p, nil
}

type UpperCaseProcessor struct{}

func (UpperCaseProcessor) Process(_ context.Context, p models.Person) (models.Person, error) {
	return models.NewPerson(strings.ToUpper(p.FirstName), strings.ToUpper(p.LastName)), nil
}

// ProcessorFunc adapts a plain function to ItemProcessor.
type ProcessorFunc func(ctx context.Context, p models.Person) (models.Person, error)

func (f ProcessorFunc) Process(ctx context.Context, p models.Person) (models.Person, error) {
	return f(ctx, p)
}

// CompositeProcessor applies each processor in order.
type CompositeProcessor []ItemProcessor

func (c CompositeProcessor) Process(ctx context.Context, p models.Person) (models.Person, error) {
	var err error
	for _, proc := range c {
		if p, err = proc.Process(ctx, p); err != nil {
			return models.Person{}, err
		}
	}
	return p, nil
}

var processors = map[string]ItemProcessor{
	"swap":     SwapProcessor{},
	"identity": IdentityProcessor{},
	"none":     IdentityProcessor{},
	"upper":    UpperCaseProcessor{},
}

// ProcessorByName resolves a comma-separated list such as "swap,upper".
// An empty name selects the swap processor.
func ProcessorByName(name string) (ItemProcessor, error) {
	if strings.TrimSpace(name) == "" {
		return SwapProcessor{}, nil
	}

	var chain CompositeProcessor
	for _, part := range strings.Split(name, ",") {
		key := strings.ToLower(strings.TrimSpace(part))
		proc, ok := processors[key]
		if !ok {
			return nil, fmt.Errorf("unknown processor %q", part)
		}
		chain = append(chain, proc)
	}

	if len(chain) == 1 {
		return chain[0], nil
	}
	return chain, nil
}
