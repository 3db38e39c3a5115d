// Package dto defines request payload structs with gin binding tags.
//
// Responses are built inline in handlers (gin.H plus the response envelope);
// only inbound payloads warrant named types, because their binding tags carry
// the required-field validation.
package dto
