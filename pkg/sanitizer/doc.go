// Package sanitizer normalizes free-text input for hotels and room types.
//
// All normalization functions are idempotent. Invalid input is handled by
// returning an empty string rather than an error, leaving rejection to validation.
//
// Normalization includes:
//   - Names and descriptions: collapse whitespace, trim leading/trailing spaces
//   - Locations: as names, plus stripping characters that carry no meaning in a place name
//   - Search terms: escaped into a literal regular expression for storage lookups
package sanitizer
