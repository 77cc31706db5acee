/*
Package domain contains the core models of the survey flow engine.

It defines the question graph and the per-session flow state. The package is
pure: no I/O, no persistence, no logging.

# Key Entities

  - Question: one node of the graph, a tagged union selected by Kind.
  - Graph: the immutable set of questions plus the start id.
  - FlowState: answers, the visited log and the pending sub-flow queue.
  - Snapshot / Session: the serializable forms handed to stores.
*/
package domain
