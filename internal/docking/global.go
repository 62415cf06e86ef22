package docking

import "github.com/Gaurav-Gosain/tuidock/internal/layout"

// GlobalTargets decides whether whole-surface docking should be offered
// around target. It walks the split containers above target and counts their
// non-split children per split orientation, stopping once both buckets hold
// two. Two or more in the vertical bucket enable the horizontal (Left/Right)
// targets; two or more in the horizontal bucket enable Top/Bottom.
func GlobalTargets(target *layout.Dockable) (horizontal, vertical bool) {
	var h, v int
	for n := target; n != nil; n = n.Owner {
		if n.Kind != layout.KindSplit {
			continue
		}
		for _, c := range n.Children {
			if c.Kind == layout.KindSplit {
				continue
			}
			if n.Orientation == layout.Horizontal {
				h++
			} else {
				v++
			}
		}
		if h >= 2 && v >= 2 {
			break
		}
	}
	return v >= 2, h >= 2
}
