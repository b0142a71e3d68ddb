// Package sheet provides the Grid consumed by the template scanner and the
// xlsx reader that produces it.
//
// The reader is the only place where spreadsheet quirks are absorbed: blank
// cells, whitespace-only cells and reader null tokens all become the Empty
// sentinel, full-width digits are folded to ASCII and Hangul is composed to
// NFC. Everything downstream can compare cell text byte for byte.
package sheet
