package editor

// MenuAction is an entry of the node context menu.
type MenuAction int

const (
	MenuRename MenuAction = iota
	MenuAddChild
	MenuDelete
)

func (a MenuAction) String() string {
	switch a {
	case MenuRename:
		return "rename"
	case MenuAddChild:
		return "add_child"
	case MenuDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// MenuItem is one row of the rendered menu.
type MenuItem struct {
	Action MenuAction
	Label  string
	Key    string
}

// MenuItems lists the menu rows top to bottom.
var MenuItems = []MenuItem{
	{Action: MenuRename, Label: "Rename", Key: "r"},
	{Action: MenuAddChild, Label: "Add child", Key: "a"},
	{Action: MenuDelete, Label: "Delete", Key: "d"},
}
