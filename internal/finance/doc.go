// Package finance turns a snapshot of one user's financial records into
// derived figures: net worth and liquidity, budget variance, goal feasibility,
// debt payoff horizons, investment performance, asset depreciation and bill
// obligations.
//
// Every function is a pure computation over the values it is given. Nothing
// here performs I/O or reads the wall clock; time-dependent results take an
// explicit asOf. Inputs are never modified, so a snapshot can be shared by
// concurrent callers without locking.
//
// Money is expressed in minor currency units (int64 cents). Intermediate
// arithmetic that can produce fractions runs on decimal.Decimal and is
// rounded half away from zero back to whole units. Percentages are float64.
//
// Malformed records (a goal whose target date precedes its start, a negative
// quantity, ...) produce a *ValidationError. Degenerate but valid inputs such
// as a zero budget or a zero cost basis never error; each result documents its
// fallback value instead.
package finance
