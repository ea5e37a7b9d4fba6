package database

import (
	"sort"

	"opsconsole-backend/internal/models"
)

// MenuRepo handles menu database operations
type MenuRepo struct{}

// NewMenuRepo creates a new menu repository
func NewMenuRepo() *MenuRepo {
	return &MenuRepo{}
}

// ListByUserID retrieves the menus granted to a user, buttons excluded
func (r *MenuRepo) ListByUserID(userID int64) ([]*models.Menu, error) {
	rows, err := DB.Query(`
		SELECT m.id, m.parent_id, m.menu_name, m.path, m.component, m.menu_type,
		       m.perms, m.icon, m.order_num, m.visible
		FROM menus m
		JOIN user_menus um ON um.menu_id = m.id
		WHERE um.user_id = ? AND m.menu_type != 'F'
		ORDER BY m.parent_id, m.order_num
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []*models.Menu
	for rows.Next() {
		menu, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		menus = append(menus, menu)
	}

	return menus, rows.Err()
}

// ListPermsByUserID retrieves the permission strings granted to a user
func (r *MenuRepo) ListPermsByUserID(userID int64) ([]string, error) {
	rows, err := DB.Query(`
		SELECT DISTINCT m.perms
		FROM menus m
		JOIN user_menus um ON um.menu_id = m.id
		WHERE um.user_id = ? AND m.perms IS NOT NULL AND m.perms != ''
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}

	return perms, rows.Err()
}

// Grant assigns a menu to a user
func (r *MenuRepo) Grant(userID, menuID int64) error {
	_, err := DB.Exec(`
		INSERT OR IGNORE INTO user_menus (user_id, menu_id) VALUES (?, ?)
	`, userID, menuID)
	return err
}

// Create creates a new menu entry
func (r *MenuRepo) Create(menu *models.Menu) error {
	result, err := DB.Exec(`
		INSERT INTO menus (parent_id, menu_name, path, component, menu_type, perms, icon, order_num, visible)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, menu.ParentID, menu.MenuName, menu.Path, menu.Component, menu.MenuType,
		menu.Perms, menu.Icon, menu.OrderNum, menu.Visible)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	menu.ID = id
	return nil
}

type menuScanner interface {
	Scan(dest ...any) error
}

func scanMenu(row menuScanner) (*models.Menu, error) {
	menu := &models.Menu{}
	var component, perms, icon *string
	err := row.Scan(
		&menu.ID, &menu.ParentID, &menu.MenuName, &menu.Path, &component,
		&menu.MenuType, &perms, &icon, &menu.OrderNum, &menu.Visible,
	)
	if err != nil {
		return nil, err
	}
	if component != nil {
		menu.Component = *component
	}
	if perms != nil {
		menu.Perms = *perms
	}
	if icon != nil {
		menu.Icon = *icon
	}
	return menu, nil
}

// BuildRouterTree assembles flat menu rows into the nested route tree
// returned by getRouters. Orphan nodes attach to the root.
func BuildRouterTree(menus []*models.Menu) []*models.Router {
	byID := make(map[int64]*models.Router, len(menus))
	order := make(map[*models.Router]int, len(menus))

	for _, m := range menus {
		r := &models.Router{
			Name:      m.MenuName,
			Path:      m.Path,
			Component: m.Component,
			Hidden:    !m.Visible,
			Meta:      &models.Meta{Title: m.MenuName, Icon: m.Icon},
		}
		byID[m.ID] = r
		order[r] = m.OrderNum
	}

	var roots []*models.Router
	for _, m := range menus {
		r := byID[m.ID]
		if parent, ok := byID[m.ParentID]; ok && m.ParentID != m.ID {
			parent.Children = append(parent.Children, r)
		} else {
			roots = append(roots, r)
		}
	}

	var sortChildren func(nodes []*models.Router)
	sortChildren = func(nodes []*models.Router) {
		sort.SliceStable(nodes, func(i, j int) bool {
			return order[nodes[i]] < order[nodes[j]]
		})
		for _, n := range nodes {
			sortChildren(n.Children)
		}
	}
	sortChildren(roots)

	return roots
}
