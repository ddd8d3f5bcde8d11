/*
Package domain contains the core models of the scene importer.

It defines the scene graph, the capability a kind can carry, the importer
configuration and the results, warnings and errors the components report.
The package performs no I/O.

# Key Entities

  - Node: a vertex of the imported scene graph with an ordered, owned child list.
  - Transform: a node's local transform, copied verbatim on replacement.
  - Config: hint tag, save switch, debug switch, trigger kind and scene format.
  - TransformResult / SaveReport: structured outcomes turned into messages at the boundary.
  - StepError: a failed persistence step with its sentinel kind and code.
*/
package domain
