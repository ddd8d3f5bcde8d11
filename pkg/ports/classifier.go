package ports

import "github.com/aretw0/sceneswap/pkg/domain"

// Classifier tells the transformer what a node's kind is capable of.
// It stands in for the host's type system.
type Classifier interface {
	Classify(n *domain.Node) domain.Capability
}

// ClassifierFunc adapts a plain function to a Classifier.
type ClassifierFunc func(n *domain.Node) domain.Capability

// Classify calls f(n).
func (f ClassifierFunc) Classify(n *domain.Node) domain.Capability {
	return f(n)
}
