// Package core provides the client/account viewer data pipeline.
//
// This package is the heart of clientview, containing all domain logic
// independent of any UI or transport layer. It can be used by web handlers,
// the CLI, or tests without modification.
//
// # Architecture
//
// The package is organized around a handful of stages:
//
//   - Decoding: [Decode] turns exported CSV text into string-keyed records,
//     honoring quoted fields and padding short rows.
//   - Normalization: [NormalizeBranch], [NormalizeClient] and [NormalizeAccount]
//     turn records into typed values using pt-BR number parsing.
//   - Loading: [Loader] fetches the three sheets (branches first) and builds an
//     immutable [Snapshot]; [Repository] swaps snapshots atomically.
//   - Querying: [Query] carries search, age bounds, sort and page parameters;
//     [Query.Run] applies [Filter], [Sort] and [Paginate] in that order.
//   - Reporting: [Aggregate] buckets clients into histograms using a [Policy].
//
// # Snapshot Loading
//
// Sheets load in two steps:
//
//  1. Branches are fetched, decoded and indexed by code
//  2. Clients and accounts are fetched concurrently and resolved against the index
//
// A sheet that fails to fetch loads as an empty collection. The failure is
// logged and recorded in [Snapshot.Errors]; loading itself never fails.
//
// # Error Handling
//
// Malformed numbers become zero and malformed dates become the zero time
// (see [IsValidDate]). Caller mistakes on the outer surfaces use sentinel
// errors such as [ErrClientNotFound], which [MapError] turns into coded
// user messages:
//
//   - SHEET001-SHEET003: Sheet loading problems
//   - QRY001-QRY003: Query parameter problems
//   - REQ001-REQ004: Cancellation, timeouts, malformed parameters and formats
//   - RATE001-RATE002: Rate limits and busy export slots
//
// # Background Work
//
// [Service.StartReloadScheduler] refreshes the snapshot on an interval and
// [ExportLimiter] caps concurrent report renders.
package core
