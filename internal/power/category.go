// internal/power/category.go
package power

// Category classifies how a node participates in the power network.
type Category string

const (
	CategoryGenerator Category = "GENERATOR"
	CategoryStorage   Category = "STORAGE"
	CategoryBridge    Category = "BRIDGE"
	CategorySingle    Category = "SINGLE"
	CategoryOther     Category = "OTHER"
)

// SelfPowering reports whether nodes of this category are always considered
// powered and seed their own segment even when isolated.
func (c Category) SelfPowering() bool {
	return c == CategoryGenerator || c == CategoryStorage
}
