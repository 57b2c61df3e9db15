// Package core provides the value types shared by every stage of the
// view pipeline: colors, styles, cells, styled spans, screen geometry and
// display-width helpers.
//
// The package has no dependencies on the rest of the renderer, which lets
// the pipeline stages and the backends import it without cycles.
package core
