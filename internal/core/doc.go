// Package core provides the business logic for cleaning and converting
// tabular files.
//
// This package is independent of any UI or transport layer. The web
// handlers and the command line tool both drive it through [Service] or
// through the pure functions directly.
//
// # Tables
//
// A [Table] is an ordered set of named, typed columns. Files are decoded
// into tables by the format registry ([FormatByExt]) and encoded back out
// by [Export]. Values that are blank or spell a missing marker ("NA",
// "null", ...) become missing cells; a column whose present values all
// parse as numbers is numeric, anything else is text.
//
// # Actions
//
// Each loaded file supports a fixed set of [Action]s:
//
//   - remove duplicates (+10 XP)
//   - fill missing numeric values with the column mean (+10 XP)
//   - insight suggestion (+5 XP)
//   - column selection (no XP)
//   - visualize the first two numeric columns (+15 XP)
//   - convert to CSV or Excel (+20 XP)
//
// [Apply] runs one action and returns an [Event]; [Service.Do] commits the
// event's points to the session's [RewardCounter] only when the action
// succeeded. Progress is min(xp/100, 1).
//
// # Sessions
//
// A [Session] owns its files and its XP. Sessions live in memory only and
// are removed after an idle timeout by [Service.StartSessionSweeper].
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// See error_messages.go for the code catalog.
package core
