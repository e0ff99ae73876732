// internal/model/resource.go
package model

// Resource identifies a permission target for guards and audit records.
// Organization, Project and Survey all implement it.
type Resource interface {
	ResourceType() string
	ResourceID() string
}
