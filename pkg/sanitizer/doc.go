// Package sanitizer normalizes user-supplied text before validation and storage.
//
// Every function is idempotent and never fails: invalid input degrades to the
// empty string or is passed through trimmed.
//
// Normalization includes:
//   - Emails: trimmed and lower-cased, so lookups and ownership checks are case-insensitive
//   - Free text (names, cities, addresses): whitespace collapsed and trimmed
//   - Phone numbers: E.164 when parseable in one of the configured regions, free text otherwise
//   - Picture URLs: trimmed, host lower-cased, scheme defaulted to https
package sanitizer
