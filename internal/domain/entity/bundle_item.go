package entity

// BundleItem composición de un producto "bundle": el padre requiere Quantity unidades del hijo.
type BundleItem struct {
	ParentID string
	ChildID  string
	Quantity int
}
