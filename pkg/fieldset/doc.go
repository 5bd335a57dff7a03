// Package fieldset loads declarative field lists for the form engine from
// JSON or YAML documents and OpenAPI request bodies. Validators are referenced
// by rule name and resolved through a validators.Registry, so screens can
// describe their forms as data. A catalog of the back-office fieldsets ships
// embedded in the package.
package fieldset
