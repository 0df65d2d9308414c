// Package domain defines the core types of the campaign insights service.
//
// Types in this package are value objects shared by the analysis backend,
// the result sources and the view controller. They carry no HTTP, storage
// or timer concerns.
//
// Rules for this package:
//   - No imports from other internal/ packages
//   - No context.Context or *http.Request in struct fields
//   - JSON/YAML tags are allowed (they're metadata, not behavior)
//   - Validation methods are allowed (they're pure functions on the type)
//   - Constants and enums belong here
package domain
