// Package renderer turns documents into styled terminal rows.
//
// A Pane renders one document. Each frame runs the same pipeline:
//
//	┌─────────────────────────────────────────┐
//	│  Pane (viewport, cursor, decorations)   │
//	├─────────────────────────────────────────┤
//	│  token.Build → wrap.Apply → layout      │
//	│  (cached per viewport and generation)   │
//	├─────────────────────────────────────────┤
//	│  linerender: gutter, style resolution,  │
//	│  cursor placement, hit-test mappings    │
//	├─────────────────────────────────────────┤
//	│  compose margins │ scrollbar track      │
//	├─────────────────────────────────────────┤
//	│  backend: screen buffer → tcell / ANSI  │
//	└─────────────────────────────────────────┘
//
// A DiffPane shows two documents side by side through the composite
// renderer.
//
// Usage:
//
//	doc, _ := document.Open("main.go")
//	pane := renderer.NewPane(doc, renderer.OptionsFromConfig(cfg))
//	pane.SetHighlighter(highlight.NewChromaProvider(theme, doc.Path(), doc.Bytes()))
//	pane.Draw(screen, core.NewRect(0, 0, width, height))
//	screen.Flush()
package renderer
