// Package sandbox generates the before/after example project pair for one
// catalog template.
//
// # Builder
//
// Builder runs the per-template pipeline with all necessary dependencies:
//
//	builder := &sandbox.Builder{
//	    OutputRoot:     "sandboxes",
//	    Runner:         system.DefaultRunner(),
//	    Registry:       registry.NewNPM(system.DefaultRunner()),
//	    CommandTimeout: 10 * time.Minute,
//	}
//
//	err := builder.Build(ctx, sandbox.Task{Template: tpl})
//
// # Generation Flow
//
// Builder.Build:
//  1. Clears and recreates the template's output directory
//  2. Creates a fresh temporary root
//  3. Runs the scaffolding command (self-naming or directory-agnostic mode)
//  4. Snapshots the scaffolded project into before/, filtering the
//     dependency cache and version-control metadata
//  5. Runs the toolkit installer, optionally through the local registry
//     swap and the peer-dependency relaxation guard
//  6. Promotes the installed project into after/ by renaming it out of
//     the temporary root
//  7. Writes the preview config and README into after/
//  8. Optionally strips node_modules from after/, then removes the
//     temporary root
//
// Any failure aborts only the owning task. The output directory is left in
// whatever partial state existed at the point of failure and must not be
// published; the temporary root is left in place for inspection.
package sandbox
