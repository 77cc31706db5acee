/*
Package ports defines the driven ports (interfaces) for the survey engine.

These interfaces decouple the core logic from external implementations, allowing
surveys to be loaded from several sources and sessions to be kept in several
storage backends.

# Key Interfaces

  - GraphLoader: Builds the question graph (e.g., from Loam, a survey file or memory).
  - LabelSource: Optional companion of a loader that resolves display references.
  - StateStore: Persists and loads respondent sessions.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
*/
package ports
