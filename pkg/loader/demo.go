package loader

import "github.com/oakwood-commons/figpie/pkg/cell"

// Demo returns the built-in sample tree shown when no file is given.
func Demo() *cell.Container {
	union := cell.Must(cell.NewUnion("union", "",
		cell.Branch{Name: "a", Cells: []cell.Cell{
			cell.Must(cell.NewInt("a1", 2)),
			cell.Must(cell.NewFloat("a2", 3.4)),
		}},
		cell.Branch{Name: "b", Cells: []cell.Cell{
			cell.Must(cell.NewString("b1", "asdf")),
		}},
	))
	lvl2 := cell.Must(cell.NewContainer("lvl2",
		cell.Must(cell.NewInt("2c1", 234)),
		cell.Must(cell.NewVariant("2p1", 1)),
		cell.Must(cell.NewString("2p2", "string")),
		cell.Must(cell.NewFloat("float prop", 5.2)),
		cell.Must(cell.NewInt("int prop", 5)),
		cell.Must(cell.NewEnum("enum prop", []string{"a", "b", "c", "d"}, "a")),
		cell.Must(cell.NewBool("bool prop", true)),
		union,
	))
	lvl1 := cell.Must(cell.NewContainer("lvl1", cell.Must(cell.NewLeaf("1c2")), lvl2))
	return cell.Must(cell.NewContainer("root",
		cell.Must(cell.NewLeaf("rc1")),
		cell.Must(cell.NewLambda("lambda", func() any { return 1 })),
		lvl1,
	))
}
