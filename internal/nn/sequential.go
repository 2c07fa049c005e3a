package nn

import (
	"fmt"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input. ForwardAll keeps
// every intermediate activation so that each stage can be inspected or
// written out.
type Sequential struct {
	modules []Module
}

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{modules: modules}
}

// Add appends a module to the sequence.
func (s *Sequential) Add(module Module) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential) Module(index int) Module {
	if index < 0 || index >= len(s.modules) {
		panic("Sequential.Module: index out of bounds")
	}
	return s.modules[index]
}

// Forward applies all modules in sequence and returns the last output.
func (s *Sequential) Forward(input Activation) (Activation, error) {
	outputs, err := s.ForwardAll(input)
	if err != nil {
		return Activation{}, err
	}
	if len(outputs) == 0 {
		return input, nil
	}
	return outputs[len(outputs)-1], nil
}

// ForwardAll applies all modules in sequence and returns the output of every
// module, indexed like the modules. Processing stops at the first error.
func (s *Sequential) ForwardAll(input Activation) ([]Activation, error) {
	outputs := make([]Activation, 0, len(s.modules))
	x := input
	for i, module := range s.modules {
		y, err := module.Forward(x)
		if err != nil {
			return outputs, fmt.Errorf("stage %d (%s): %w", i, module.Name(), err)
		}
		outputs = append(outputs, y)
		x = y
	}
	return outputs, nil
}
