package entity

import "fmt"

// Category nodo de una jerarquía de exactamente un nivel: los padres tienen hijos,
// los hijos referencian a un único padre y no tienen hijos propios.
type Category struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	ParentID *int64     `json:"parent_id"`
	Children []Category `json:"children,omitempty"`
	Actions  Actions    `json:"actions"`
}

// IsRoot indica si la categoría no tiene padre.
func (c Category) IsRoot() bool { return c.ParentID == nil }

// ValidateCategoryTree comprueba el invariante de un nivel sobre un árbol devuelto por el servidor.
func ValidateCategoryTree(roots []Category) error {
	for _, root := range roots {
		if !root.IsRoot() {
			return fmt.Errorf("categoría %d: la raíz no puede tener padre", root.ID)
		}
		for _, child := range root.Children {
			if child.ParentID == nil || *child.ParentID != root.ID {
				return fmt.Errorf("categoría %d: el hijo debe referenciar al padre %d", child.ID, root.ID)
			}
			if len(child.Children) > 0 {
				return fmt.Errorf("categoría %d: la jerarquía admite un solo nivel", child.ID)
			}
		}
	}
	return nil
}

// BuildCategoryTree agrupa una lista plana en raíces con hijos. Falla si un hijo
// apunta a un padre inexistente o a otro hijo.
func BuildCategoryTree(flat []Category) ([]Category, error) {
	index := make(map[int64]int, len(flat))
	roots := make([]Category, 0, len(flat))
	for _, c := range flat {
		if c.IsRoot() {
			c.Children = nil
			index[c.ID] = len(roots)
			roots = append(roots, c)
		}
	}
	for _, c := range flat {
		if c.IsRoot() {
			continue
		}
		pos, ok := index[*c.ParentID]
		if !ok {
			return nil, fmt.Errorf("categoría %d: padre %d inexistente o no es raíz", c.ID, *c.ParentID)
		}
		c.Children = nil
		roots[pos].Children = append(roots[pos].Children, c)
	}
	return roots, nil
}
