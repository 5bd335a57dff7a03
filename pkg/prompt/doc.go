// Package prompt fills a form interactively on a terminal. A Session asks
// for each editable control in field order, shows the translated inline
// error until the answer is accepted, then submits the form.
package prompt
