package main

import (
	"fmt"
	"io"

	"github.com/Faultbox/gpaint/pkg/gpdata"
)

func printInfo(w io.Writer, path string, doc *gpdata.Document) {
	fmt.Fprintf(w, "Document: %s\n", path)
	if doc.Name != "" {
		fmt.Fprintf(w, "Name:     %s\n", doc.Name)
	}
	fmt.Fprintf(w, "Layers:   %d\n", len(doc.Layers))
	fmt.Fprintf(w, "Points:   %d\n", doc.PointCount())
	fmt.Fprintln(w)

	for _, l := range doc.Layers {
		state := ""
		switch {
		case l.Hidden:
			state = " (hidden)"
		case l.Locked:
			state = " (locked)"
		}
		fmt.Fprintf(w, "Layer %q%s, active frame %d\n", l.Name, state, l.Active)
		for _, f := range l.Frames {
			points := 0
			for _, st := range f.Strokes {
				points += len(st.Points)
			}
			mark := " "
			if f.Selected {
				mark = "*"
			}
			fmt.Fprintf(w, "  %s frame %-4d %4d strokes %6d points\n", mark, f.Number, len(f.Strokes), points)
		}
	}

	if len(doc.VertexGroups) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Vertex groups:")
	for i, g := range doc.VertexGroups {
		flags := ""
		if i == doc.ActiveGroup {
			flags += " active"
		}
		if g.Locked {
			flags += " locked"
		}
		fmt.Fprintf(w, "  %d %s%s\n", i, g.Name, flags)
	}
}
