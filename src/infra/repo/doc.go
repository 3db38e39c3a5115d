// Package repo contains repository implementations (adapters) for the ports
// defined in src/core/ports.
//
// Two implementations exist:
//   - PostgresRepository: the production adapter backed by pgx. The
//     (external_id, user_id) dedup invariant is enforced by a database
//     uniqueness constraint, so concurrent ingestion of the same external
//     joke can never produce duplicate rows.
//   - MemoryRepository: a mutex-guarded in-memory adapter mirroring the same
//     constraint semantics, used by service and handler tests.
//
// Repositories translate storage-level failures (pgx.ErrNoRows, unique
// violations) into domain errors; they never leak driver errors for
// conditions the domain has a name for.
package repo
