// Package i18n resolves the message keys produced by the form engine into
// localized text. Catalogs are YAML trees flattened into dotted keys; values
// may use pongo2 placeholders such as "{{ min }}" that are filled from the
// message params.
package i18n
