// Package models defines boundary DTOs and persisted entities for the cleanify content filter.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): structs exchanged with callers, defaulted at the boundary
//   - [Track] : track identity handed to the filter engine; [NewTrack] fills missing fields
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [Override] : parent-supplied block/allow decision for a track under a policy
//   - [VerdictRecord] : history entry for a freshly computed verdict
//
// All persistent entities implement the Model interface providing ID generation, timestamps and validation.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
