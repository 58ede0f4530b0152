package core

// ArrayRole tags what part an exported array played in a study.
type ArrayRole string

const (
	RoleDesignColumn ArrayRole = "design_column"
	RoleModelOutput  ArrayRole = "model_output"
	RoleFirstOrder   ArrayRole = "first_order_index"
	RoleTotalOrder   ArrayRole = "total_order_index"
	RoleConfidence   ArrayRole = "confidence_halfwidth"
)

// NamedArray is the flat export form the archival writer consumes:
// a named numeric vector with attached unit and role metadata.
// The on-disk layout is the writer's concern, not ours.
type NamedArray struct {
	Name   string    `json:"name"`
	Unit   string    `json:"unit"`
	Role   ArrayRole `json:"role"`
	Values []float64 `json:"values"`
}
