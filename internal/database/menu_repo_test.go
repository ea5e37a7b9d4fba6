package database

import (
	"testing"

	"opsconsole-backend/internal/models"
)

func TestBuildRouterTree(t *testing.T) {
	menus := []*models.Menu{
		{ID: 1, ParentID: 0, MenuName: "System", Path: "/system", MenuType: models.MenuTypeDir, OrderNum: 2, Visible: true},
		{ID: 2, ParentID: 1, MenuName: "Users", Path: "user", Component: "system/user/index", MenuType: models.MenuTypePage, OrderNum: 2, Visible: true},
		{ID: 3, ParentID: 1, MenuName: "Menus", Path: "menu", Component: "system/menu/index", MenuType: models.MenuTypePage, OrderNum: 1, Visible: false},
		{ID: 4, ParentID: 0, MenuName: "Home", Path: "/home", MenuType: models.MenuTypePage, OrderNum: 1, Visible: true},
	}

	tree := BuildRouterTree(menus)

	if len(tree) != 2 {
		t.Fatalf("root count = %d, want 2", len(tree))
	}
	// Roots come back in order_num order.
	if tree[0].Name != "Home" || tree[1].Name != "System" {
		t.Errorf("root order = %q, %q, want Home, System", tree[0].Name, tree[1].Name)
	}

	system := tree[1]
	if len(system.Children) != 2 {
		t.Fatalf("System children = %d, want 2", len(system.Children))
	}
	if system.Children[0].Name != "Menus" || system.Children[1].Name != "Users" {
		t.Errorf("child order = %q, %q, want Menus, Users", system.Children[0].Name, system.Children[1].Name)
	}
	if !system.Children[0].Hidden {
		t.Error("invisible menu should map to a hidden route")
	}
	if system.Meta == nil || system.Meta.Title != "System" {
		t.Errorf("meta = %+v, want title System", system.Meta)
	}
}

func TestBuildRouterTreeOrphan(t *testing.T) {
	// A child whose parent was filtered out attaches to the root.
	menus := []*models.Menu{
		{ID: 5, ParentID: 99, MenuName: "Stray", Path: "stray", MenuType: models.MenuTypePage, Visible: true},
	}

	tree := BuildRouterTree(menus)
	if len(tree) != 1 || tree[0].Name != "Stray" {
		t.Fatalf("tree = %+v, want single Stray root", tree)
	}
}

func TestBuildRouterTreeEmpty(t *testing.T) {
	if tree := BuildRouterTree(nil); len(tree) != 0 {
		t.Errorf("tree = %+v, want empty", tree)
	}
}
