package action

import (
	"fmt"

	"github.com/quickvc/commit-control/internal/format/table"
	"github.com/quickvc/commit-control/internal/vcs"
)

// Item is a selectable row in the commit list.
type Item struct {
	ID    string
	Label string
}

// CommitItems renders commits as aligned rows: position, short identifier,
// comment. Row order follows the fetched list order.
func CommitItems(commits []vcs.Commit) []Item {
	if len(commits) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(commits))
	ids := make([]string, 0, len(commits))
	for _, c := range commits {
		comment := c.Comment
		if comment == "" {
			comment = "(no comment)"
		}
		rows = append(rows, []string{fmt.Sprintf("%d", c.Position+1), c.ShortID(), comment})
		ids = append(ids, c.ID)
	}
	aligned := table.Format(rows, []table.Alignment{table.AlignRight, table.AlignLeft, table.AlignLeft})
	items := make([]Item, len(aligned))
	for i, label := range aligned {
		items[i] = Item{ID: ids[i], Label: label}
	}
	return items
}
