// Package samples ships ready-made survey graphs: a crop survey used in the
// field and a few small graphs that exercise one component each.
//
// Titles and option labels are references into Labels, an English catalog.
package samples
