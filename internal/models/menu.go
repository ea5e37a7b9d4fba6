package models

// MenuType discriminates directory, page and button entries
type MenuType string

const (
	MenuTypeDir    MenuType = "M"
	MenuTypePage   MenuType = "C"
	MenuTypeButton MenuType = "F"
)

// Menu represents one row of the menu table
type Menu struct {
	ID        int64    `json:"menuId"`
	ParentID  int64    `json:"parentId"`
	MenuName  string   `json:"menuName"`
	Path      string   `json:"path"`
	Component string   `json:"component,omitempty"`
	MenuType  MenuType `json:"menuType"`
	Perms     string   `json:"perms,omitempty"`
	Icon      string   `json:"icon,omitempty"`
	OrderNum  int      `json:"orderNum"`
	Visible   bool     `json:"visible"`
}

// Router is one node of the route tree returned by getRouters
type Router struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Component string    `json:"component,omitempty"`
	Hidden    bool      `json:"hidden"`
	Meta      *Meta     `json:"meta,omitempty"`
	Children  []*Router `json:"children,omitempty"`
}

// Meta carries the display attributes of a route
type Meta struct {
	Title string `json:"title"`
	Icon  string `json:"icon,omitempty"`
}
