// Package forecast simulates the evolution of a personal financial position
// over a time horizon.
//
// A Model holds entities (chequing accounts, assets, investments and debts)
// and transfers between them or with the outside world. Running a model
// lays out a timeline schedule and replays it day after day:
//   - Accrual: every entity compounds daily at its annual nominal rate.
//     Assets and chequing accounts appreciate in place, investments and debts
//     buffer their accruals until a deposit transfer drains the buffer.
//   - Transfers: one-time and recurring movements of funds settle on their
//     dates, in a fixed order. A debt is never paid beyond zero.
//   - Recording: at each record date (end of month, quarter, half or year)
//     the balance of every entity is appended to its history.
//
// A run is a pure function of the model definition: it always replays from
// the entities initial values, so running twice gives the same histories.
//
// This package is the engine behind the `fcast` command-line tool, which
// reads scenario files and renders the resulting histories.
package forecast
