package domain

import "fmt"

// WarningCode identifies a non-fatal condition found while importing.
type WarningCode string

const (
	WarningUnsupportedNodeKind WarningCode = "unsupported_node_kind"
	WarningNoMatchesFound      WarningCode = "no_matches_found"
)

// Warning is a caller visible, non-fatal report.
type Warning struct {
	Code WarningCode `json:"code"`
	Path string      `json:"path,omitempty"`
	Name string      `json:"name,omitempty"`
	Kind Kind        `json:"kind,omitempty"`
	Tag  string      `json:"tag,omitempty"`
}

// Err returns the sentinel matching the warning code.
func (w Warning) Err() error {
	switch w.Code {
	case WarningUnsupportedNodeKind:
		return ErrUnsupportedNodeKind
	case WarningNoMatchesFound:
		return ErrNoMatchesFound
	default:
		return nil
	}
}

func (w Warning) String() string {
	switch w.Code {
	case WarningUnsupportedNodeKind:
		return fmt.Sprintf("%q matches tag but is not a collision volume (kind %s)", w.Name, w.Kind)
	case WarningNoMatchesFound:
		return fmt.Sprintf("no collision volumes found with tag %q", w.Tag)
	default:
		return string(w.Code)
	}
}

// TransformResult is what a transform run returns: the (mutated) root, how
// many nodes were replaced and the warnings in traversal order.
type TransformResult struct {
	Root     *Node
	Replaced int
	Warnings []Warning
}

// StepOutcome records whether a persistence step ran and how it ended.
type StepOutcome struct {
	Attempted bool
	Err       error
}

// OK reports whether the step ran and succeeded.
func (o StepOutcome) OK() bool {
	return o.Attempted && o.Err == nil
}

// SaveReport describes one run of the persistence adapter.
type SaveReport struct {
	Path             string
	DirectoryCreated bool
	Directory        StepOutcome
	Pack             StepOutcome
	Write            StepOutcome
	Bytes            int
}
