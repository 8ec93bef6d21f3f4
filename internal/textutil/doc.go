// Package textutil provides the text normalization rules applied to caption
// payloads before tokenization.
//
// The primary use cases are:
//   - Stripping markup tags (<i>, <font ...>) from caption text
//   - Restricting text to letters, digits, spaces and . , ? !
//   - Collapsing whitespace runs into single spaces
//
// Letters are matched by Unicode category, so accented and non-Latin letters
// survive cleaning in every supported language. Input is NFC-normalized
// first so a decomposed "u" + combining diaeresis is kept as "ü".
package textutil
