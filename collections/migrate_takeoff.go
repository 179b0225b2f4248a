package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// MigratePruneStaleTakeoffLines deletes takeoff lines whose source element
// instance no longer exists. Lines reference their instance by textual id
// rather than a relation, so deleting an instance leaves its lines behind
// until the next takeoff run replaces them; stale lines from a project
// that never re-runs would otherwise distort the estimate.
// Safe to call on every startup -- returns early if nothing to prune.
func MigratePruneStaleTakeoffLines(app *pocketbase.PocketBase) error {
	linesCol, err := app.FindCollectionByNameOrId("takeoff_lines")
	if err != nil {
		return fmt.Errorf("migrate_takeoff: could not find takeoff_lines collection: %w", err)
	}

	instancesCol, err := app.FindCollectionByNameOrId("element_instances")
	if err != nil {
		return fmt.Errorf("migrate_takeoff: could not find element_instances collection: %w", err)
	}

	lines, err := app.FindAllRecords(linesCol)
	if err != nil {
		return fmt.Errorf("migrate_takeoff: could not query takeoff lines: %w", err)
	}
	if len(lines) == 0 {
		return nil
	}

	instances, err := app.FindAllRecords(instancesCol)
	if err != nil {
		return fmt.Errorf("migrate_takeoff: could not query element instances: %w", err)
	}
	alive := make(map[string]bool, len(instances))
	for _, inst := range instances {
		alive[inst.Id] = true
	}

	pruned := 0
	for _, line := range lines {
		source := line.GetString("source_element")
		if source == "" || alive[source] {
			continue
		}
		if err := app.Delete(line); err != nil {
			log.Printf("migrate_takeoff: failed to delete stale line %s (%s): %v\n",
				line.Id, line.GetString("line_id"), err)
			continue
		}
		pruned++
	}

	if pruned > 0 {
		log.Printf("migrate_takeoff: pruned %d stale takeoff line(s).\n", pruned)
	}
	return nil
}
