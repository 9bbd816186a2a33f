package codec

import (
	"sort"

	swf "github.com/scwmake/supercellswf"
)

// sortedResourceIDs returns every resource id in doc.Resources in ascending
// order, the order tags of each kind are re-emitted in (spec: "in
// ascending resource id order").
func sortedResourceIDs(doc *swf.Document) []uint16 {
	ids := make([]uint16, 0, len(doc.Resources))
	for id := range doc.Resources {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func shapesInOrder(doc *swf.Document) []*swf.Shape {
	var out []*swf.Shape
	for _, id := range sortedResourceIDs(doc) {
		if s, ok := doc.Resources[id].(*swf.Shape); ok {
			out = append(out, s)
		}
	}
	return out
}

func movieClipsInOrder(doc *swf.Document) []*swf.MovieClip {
	var out []*swf.MovieClip
	for _, id := range sortedResourceIDs(doc) {
		if mc, ok := doc.Resources[id].(*swf.MovieClip); ok {
			out = append(out, mc)
		}
	}
	return out
}

func textFieldsInOrder(doc *swf.Document) []*swf.TextField {
	var out []*swf.TextField
	for _, id := range sortedResourceIDs(doc) {
		if tf, ok := doc.Resources[id].(*swf.TextField); ok {
			out = append(out, tf)
		}
	}
	return out
}

func modifiersInOrder(doc *swf.Document) []*swf.MovieClipModifier {
	var out []*swf.MovieClipModifier
	for _, id := range sortedResourceIDs(doc) {
		if m, ok := doc.Resources[id].(*swf.MovieClipModifier); ok {
			out = append(out, m)
		}
	}
	return out
}

// sortedExportIDs returns every resource id in doc.Exports in ascending
// order, for deterministic export-table emission.
func sortedExportIDs(doc *swf.Document) []uint16 {
	ids := make([]uint16, 0, len(doc.Exports))
	for id := range doc.Exports {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
