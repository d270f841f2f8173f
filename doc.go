// Package delegate provides a bounded delegation engine for multi-agent
// systems: an executing agent can spawn further agents recursively while the
// engine guarantees the spawn tree always terminates.
//
// Termination is enforced by five independent, composable mechanisms defined
// on a [Budget]: maximum tree depth, per-expansion breadth, cumulative agent
// count, wall-clock time, and semantic stagnation (consecutive expansions
// that produce no new evidence).
//
// The engine supports three traversal disciplines selected per run:
//
//   - [ModeBFS] expands each node's children concurrently, level by level.
//   - [ModeDFS] descends one branch at a time, fully, before backtracking.
//   - [ModeAdaptive] explores broadly near the root and drills down
//     sequentially once a branch has been chosen.
//
// # Quick Start
//
//	exec := claudeexec.New(claudeexec.WithModel(anthropic.ModelClaudeSonnet4_5))
//	engine := delegate.NewEngine(exec)
//	result, err := engine.Delegate(ctx, "researcher", "Survey the topic", children,
//	    delegate.DefaultBudget(), delegate.ModeBFS)
//
// A run always yields a well-formed [Result] once started: boundary trips are
// reported as stop reasons, per-node failures are collected into the error
// sequence without cancelling siblings, and only an invalid configuration
// fails before a run begins.
//
// # Sub-packages
//
//   - [claudeexec] provides a production Executor backed by the Anthropic API.
//   - [session] provides SessionStore implementations (FileStore, MemoryStore).
//   - [skills] loads markdown skills for injection into agent prompts.
//   - [tasktool] exposes the engine as a tool a parent agent can call.
package delegate
