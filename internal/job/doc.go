// Package job defines the static description of pipeline work: job
// templates, matrix axes, the concrete instances a template expands into,
// and the lifecycle status an instance moves through. Expansion is a pure
// function so it can be tested independently of scheduling.
package job
