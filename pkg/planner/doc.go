// Package planner reconciles the installed packages with a desired list.
//
// A Plan uninstalls every Direct package the user no longer wants and
// installs every package they do. Indirect packages are left alone: they
// belong to whatever depends on them. Plans are executed concurrently;
// ordering within one install's dependency subtree is the orchestrator's
// job.
package planner
