// Package pkg provides the core libraries for shapecanvas diagram layout.
//
// # Overview
//
// Shapecanvas computes 2D layouts for diagram scenes: boxes connected by
// connectors, placed on a fixed-size canvas. The pkg directory is organized
// around the data flow of a layout run:
//
//  1. [scene] - Scene definitions (boxes, connectors, canvas) and file I/O
//  2. [layout] - Layout strategies (grid, hierarchical, force, circular)
//  3. [render] - Output formats (SVG, PNG, PDF, DOT, JSON)
//  4. [pipeline] - Orchestration (validate, arrange, render, cache)
//  5. [store] - Persistence of arranged layouts for the HTTP API
//
// # Architecture
//
// The typical data flow through shapecanvas:
//
//	Scene file (JSON/YAML)
//	         |
//	   scene.ReadFile
//	         |
//	  layout.Engine.Arrange  (strategy picked via layout.ParseStrategy)
//	         |
//	  render.RenderSVG / render.ToDOT / ...
//	         |
//	   Output artifacts
//
// The [pipeline] package ties these stages together, adding content-addressed
// caching (pkg/cache) so repeated runs over the same scene and options reuse
// prior results. Supporting packages:
//
//   - [geometry] - Points, sizes, and rectangle intersection math
//   - [shape] - Box shape kinds (rectangle, ellipse, circle)
//   - [errors] - Structured errors with machine-readable codes
//   - [cache] - File, Redis, and no-op cache backends
//   - [observability] - Hook points for instrumenting arrange and render
//   - [api] - HTTP handlers exposing the pipeline as a service
//   - [buildinfo] - Version metadata injected at build time
package pkg
