/*
Package sceneswap rewrites imported 3D scene graphs so that collision volumes
marked by a naming convention become trigger volumes, then saves the result as
a scene file next to the imported asset.

# Concept

An asset import produces a tree of nodes. Artists mark the nodes meant to be
overlap regions by giving them a name suffix, the hint tag ("_CM" by default).
sceneswap walks the tree once, swaps every tagged collision volume for a
trigger volume with the same name, local transform, slot and children, and
reports tagged nodes it could not convert. The host always gets its tree back,
even when saving fails.

# Usage

	imp, err := sceneswap.New(
		sceneswap.WithConfig(domain.DefaultConfig()),
		sceneswap.WithLogger(logger),
	)
	if err != nil {
		log.Fatal(err)
	}

	res := imp.PostImport(ctx, root, ports.StaticSource("assets/level.glb"))
	for _, w := range res.Warnings {
		fmt.Println(w)
	}
	if res.Err != nil {
		log.Println(res.Err)
	}

# Architecture

The domain types live in pkg/domain and the collaborator interfaces in
pkg/ports. The node kind hierarchy that decides what counts as a collision
volume is pkg/registry. Scene files are produced by pkg/scenefile and written
through a ports.SceneStore (pkg/adapters/file or pkg/adapters/memory).
*/
package sceneswap
