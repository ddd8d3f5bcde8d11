/*
Package ports defines the driven ports (interfaces) of the scene importer.

These interfaces decouple the transform and persistence logic from the host
that embeds it, so the same code runs inside an import pipeline, the CLI or tests.

# Key Interfaces

  - Classifier: decides whether a node's kind is a collision volume.
  - SceneStore: creates output directories and stores packed scene files.
  - SourceResolver: returns the path of the asset being imported.
*/
package ports
